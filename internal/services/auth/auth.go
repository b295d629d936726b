// Package auth содержит бизнес-логику регистрации, входа и обновления токенов.
//
// Роль пользователя нигде не хранится: admin получает только тот, чей
// нормализованный никнейм совпадает с настроенным никнеймом администратора.
// Роль выводится заново при каждом входе и каждом обновлении токена —
// refresh-токен её не переносит.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/novasports/nova-backend/internal/lib/jwt"
	"github.com/novasports/nova-backend/internal/lib/nickname"
	"github.com/novasports/nova-backend/internal/lib/password"
	"github.com/novasports/nova-backend/internal/models"
	"github.com/novasports/nova-backend/internal/storage/repository"
)

var (
	// ErrUserExists — никнейм, email или телефон уже заняты.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — никнейм не найден либо пароль не подошёл.
	// Причины намеренно не различаются, чтобы не помогать перебору учёток.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUserByNickname(ctx context.Context, nick string) (*models.User, error)
	UserExists(ctx context.Context, nick, email, phoneNumber string) (bool, error)
	NicknameTaken(ctx context.Context, nick string) (bool, error)
}

// TokenPair — access-токен вместе с refresh-токеном и ролью владельца.
type TokenPair struct {
	Token        string
	RefreshToken string
	Role         string
}

// AuthService отвечает за регистрацию, авторизацию и обновление токенов.
type AuthService struct {
	users         UserRepository
	jwtMaker      jwt.Maker
	adminNickname string
}

// NewAuthService создает новый экземпляр AuthService. adminNickname
// нормализуется один раз при создании.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, adminNickname string) *AuthService {
	return &AuthService{
		users:         users,
		jwtMaker:      jwtMaker,
		adminNickname: nickname.Normalize(adminNickname),
	}
}

// roleFor выводит роль из нормализованного никнейма.
func (s *AuthService) roleFor(nick string) string {
	if nick == s.adminNickname {
		return jwt.RoleAdmin
	}
	return jwt.RoleUser
}

// Register создает нового пользователя. Никнейм, email и телефон
// нормализуются до проверки уникальности, поэтому "Ann" и "ann "
// считаются одной и той же учёткой.
func (s *AuthService) Register(ctx context.Context, req models.DummyUser) (string, error) {
	const op = "auth.Register"

	nick := nickname.Normalize(req.Nickname)
	email := nickname.Normalize(req.Email)
	phone := nickname.Normalize(req.PhoneNumber)

	exists, err := s.users.UserExists(ctx, nick, email, phone)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %w", op, ErrUserExists)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		UID:          uuid.NewString(),
		FirstName:    nickname.Normalize(req.FirstName),
		LastName:     nickname.Normalize(req.LastName),
		Gender:       nickname.Normalize(req.Gender),
		Email:        email,
		PhoneNumber:  phone,
		Nickname:     nick,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль пользователя и выпускает пару токенов.
// Несуществующий никнейм и неверный пароль дают одну и ту же ошибку.
func (s *AuthService) Login(ctx context.Context, rawNickname, rawPassword string) (*TokenPair, error) {
	const op = "auth.Login"

	nick := nickname.Normalize(rawNickname)
	user, err := s.users.GetUserByNickname(ctx, nick)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	role := s.roleFor(nick)
	token, err := s.jwtMaker.GenerateToken(nick, role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refresh, err := s.jwtMaker.GenerateRefreshToken(nick)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &TokenPair{Token: token, RefreshToken: refresh, Role: role}, nil
}

// Refresh выпускает новый access-токен по refresh-токену. Роль не берётся
// из старых claims, а выводится из никнейма заново: смена администратора
// в конфиге действует с первого же обновления.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "auth.Refresh"

	nick, err := s.jwtMaker.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// Пользователь мог быть удалён после выпуска refresh-токена.
	if _, err = s.users.GetUserByNickname(ctx, nick); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	role := s.roleFor(nick)
	token, err := s.jwtMaker.GenerateToken(nick, role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &TokenPair{Token: token, RefreshToken: refreshToken, Role: role}, nil
}

// CheckNickname сообщает, свободен ли никнейм для регистрации.
func (s *AuthService) CheckNickname(ctx context.Context, rawNickname string) (bool, error) {
	const op = "auth.CheckNickname"

	taken, err := s.users.NicknameTaken(ctx, nickname.Normalize(rawNickname))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return !taken, nil
}
