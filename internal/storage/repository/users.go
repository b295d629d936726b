package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/novasports/nova-backend/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Никнейм должен приходить уже нормализованным.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (uid, first_name, last_name, gender, email,
			      phone_number, nickname, password_hash)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.FirstName, user.LastName, user.Gender, user.Email,
		user.PhoneNumber, user.Nickname, user.PasswordHash).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByNickname возвращает пользователя по нормализованному никнейму.
// Возвращает ErrNotFound, если такого пользователя нет.
func (s *Storage) GetUserByNickname(ctx context.Context, nick string) (*models.User, error) {
	const op = "storage.GetUserByNickname"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, first_name, last_name, gender, email, phone_number,
			      nickname, password_hash, created_at
			  FROM users
			  WHERE nickname = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, nick)

	if err := row.Scan(&u.UID, &u.FirstName, &u.LastName, &u.Gender, &u.Email,
		&u.PhoneNumber, &u.Nickname, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UserExists сообщает, занят ли никнейм, email или номер телефона.
// Проверка выполняется по нормализованным значениям — тем же, что
// попадают в базу при регистрации.
func (s *Storage) UserExists(ctx context.Context, nick, email, phoneNumber string) (bool, error) {
	const op = "storage.UserExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM users
			      WHERE nickname = $1 OR email = $2 OR phone_number = $3
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, nick, email, phoneNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// NicknameTaken сообщает, занят ли нормализованный никнейм.
func (s *Storage) NicknameTaken(ctx context.Context, nick string) (bool, error) {
	const op = "storage.NicknameTaken"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE nickname = $1)`
	var taken bool
	if err := s.DB.QueryRowContext(ctx, query, nick).Scan(&taken); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return taken, nil
}
