package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := time.Hour
	maker := NewMaker(secretKey, tokenTTL, 72*time.Hour)

	tests := []struct {
		name     string
		nickname string
		role     string
	}{
		{
			name:     "admin user",
			nickname: "novaadmin",
			role:     RoleAdmin,
		},
		{
			name:     "regular user",
			nickname: "ann",
			role:     RoleUser,
		},
		{
			name:     "nickname with digits",
			nickname: "user123",
			role:     RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.nickname, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.nickname, claims.Nickname)
			assert.Equal(t, tt.role, claims.Role)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewMaker(secretKey, time.Hour, 72*time.Hour)

	validToken, err := maker.GenerateToken("ann", RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "empty token",
			token:   "",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			token:   "invalid.token.here",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "expired token",
			token:   createExpiredToken(t, secretKey),
			wantErr: ErrExpiredToken,
		},
		{
			name:    "wrong secret key",
			token:   createTokenWithWrongSecret(t),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "tampered token",
			token:   validToken + "tampered",
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestMaker_ParseToken_TamperedPayloadBytes(t *testing.T) {
	maker := NewMaker("test_secret_key", time.Hour, 72*time.Hour)

	token, err := maker.GenerateToken("ann", RoleUser)
	require.NoError(t, err)

	// Подмена любого байта полезной нагрузки должна ломать подпись.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	for i := range payload {
		flipped := make([]byte, len(payload))
		copy(flipped, payload)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		tampered := parts[0] + "." + string(flipped) + "." + parts[2]

		claims, err := maker.ParseToken(tampered)
		assert.Error(t, err)
		assert.Nil(t, claims)
	}
}

func TestMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewMaker("first_secret_key", time.Hour, 72*time.Hour)
	maker2 := NewMaker("different_secret_key", time.Hour, 72*time.Hour)

	token, err := maker1.GenerateToken("ann", RoleAdmin)
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func TestMaker_RefreshToken_RoundTrip(t *testing.T) {
	maker := NewMaker("test_secret_key", time.Hour, 72*time.Hour)

	refresh, err := maker.GenerateRefreshToken("ann")
	require.NoError(t, err)

	nick, err := maker.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "ann", nick)
}

func TestMaker_RefreshToken_CarriesNoRole(t *testing.T) {
	maker := NewMaker("test_secret_key", time.Hour, 72*time.Hour)

	refresh, err := maker.GenerateRefreshToken("novaadmin")
	require.NoError(t, err)

	// Access-токен как refresh не принимается и наоборот.
	_, err = maker.ParseToken(refresh)
	assert.Error(t, err)

	access, err := maker.GenerateToken("novaadmin", RoleAdmin)
	require.NoError(t, err)
	_, err = maker.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMaker_TokenExpiration(t *testing.T) {
	maker := NewMaker("test_secret_key", 100*time.Millisecond, 72*time.Hour)

	token, err := maker.GenerateToken("ann", RoleUser)
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)

	time.Sleep(150 * time.Millisecond)

	_, err = maker.ParseToken(token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewMaker(secretKey, -time.Hour, 72*time.Hour)
	token, err := maker.GenerateToken("ann", RoleUser)
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewMaker("wrong_secret_key", time.Hour, 72*time.Hour)
	token, err := wrongMaker.GenerateToken("ann", RoleUser)
	require.NoError(t, err)
	return token
}
