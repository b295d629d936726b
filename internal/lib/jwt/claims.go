// Package jwt реализует выпуск и проверку подписанных токенов доступа.
//
// Maker описывает интерфейс для работы с парой токенов: короткоживущим
// access-токеном с никнеймом и ролью, и долгоживущим refresh-токеном,
// который несёт только никнейм. Роль никогда не переносится через
// refresh-токен — она заново выводится из идентичности при каждом обновлении.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles, допустимые в claims токена доступа.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	// ErrExpiredToken означает, что подпись токена верна, но срок его действия истёк.
	ErrExpiredToken = errors.New("token is expired")
	// ErrInvalidToken означает, что токен не читается: повреждён, подписан другим
	// ключом или не содержит обязательных claims.
	ErrInvalidToken = errors.New("token is invalid")
)

// CustomClaims описывает пользовательские данные access-токена.
type CustomClaims struct {
	Nickname             string `json:"user"` // Нормализованный никнейм пользователя
	Role                 string `json:"role"` // Роль пользователя, admin или user
	jwt.RegisteredClaims        // Стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// RefreshClaims описывает данные refresh-токена. Роль в нём отсутствует намеренно.
type RefreshClaims struct {
	Nickname             string `json:"user"`
	TokenType            string `json:"token_type"`
	jwt.RegisteredClaims
}

// Maker описывает интерфейс для генерации и парсинга токенов.
type Maker interface {
	// GenerateToken выпускает access-токен с никнеймом и ролью.
	GenerateToken(nickname, role string) (string, error)
	// GenerateRefreshToken выпускает refresh-токен, несущий только никнейм.
	GenerateRefreshToken(nickname string) (string, error)
	// ParseToken проверяет подпись и срок действия access-токена.
	ParseToken(tokenStr string) (*CustomClaims, error)
	// ParseRefreshToken проверяет refresh-токен и возвращает никнейм.
	ParseRefreshToken(tokenStr string) (string, error)
}

// MakerImpl реализует Maker на основе общего секретного ключа.
//
// Секрет и алгоритм подписи фиксированы на всё время жизни процесса:
// смена секрета делает недействительными все выпущенные ранее токены.
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	tokenTTL   time.Duration // Время жизни access-токена.
	refreshTTL time.Duration // Время жизни refresh-токена.
}

// NewMaker создаёт новый экземпляр MakerImpl.
func NewMaker(secretKey string, tokenTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}
