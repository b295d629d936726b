package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const refreshTokenType = "refresh"

// GenerateToken создает access-токен с заданными nickname и role,
// подписывая его секретным ключом. Время жизни определяется tokenTTL.
func (j *MakerImpl) GenerateToken(nickname, role string) (string, error) {
	claims := CustomClaims{
		Nickname: nickname,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// GenerateRefreshToken создает refresh-токен. Роль в claims не включается:
// при обновлении она выводится заново из никнейма.
func (j *MakerImpl) GenerateRefreshToken(nickname string) (string, error) {
	claims := RefreshClaims{
		Nickname:  nickname,
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.refreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит access-токен, проверяет его подпись и срок действия.
//
// Возвращает ErrExpiredToken для просроченного токена, чтобы клиент мог
// молча обновиться по refresh-токену, и ErrInvalidToken для любого другого
// дефекта: неверная подпись, повреждённые данные, отсутствующие claims.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%s: %w", op, ErrExpiredToken)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Nickname == "" || claims.Role == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}

// ParseRefreshToken парсит refresh-токен и возвращает никнейм его владельца.
// Access-токен в качестве refresh не принимается.
func (j *MakerImpl) ParseRefreshToken(tokenStr string) (string, error) {
	const op = "jwt.ParseRefreshToken"
	token, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, ErrExpiredToken)
		}
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid || claims.Nickname == "" || claims.TokenType != refreshTokenType {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims.Nickname, nil
}
