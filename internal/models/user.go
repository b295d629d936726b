// Package models содержит доменные структуры: пользователи, подписки
// и рекомендации. Структуры используются в бизнес‑логике и при работе
// с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Nickname хранится в нормализованном виде (strip + lowercase) и после
// регистрации не меняется. Роль пользователя в базе не хранится:
// она выводится из никнейма администратора при каждом входе и обновлении.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	FirstName    string    // Имя
	LastName     string    // Фамилия
	Gender       string    // Пол
	Email        string    // Электронная почта
	PhoneNumber  string    // Номер телефона
	Nickname     string    // Нормализованный никнейм (уникальный)
	PasswordHash string    // Bcrypt-хэш пароля
	CreatedAt    time.Time // Дата создания учётной записи
}

// DummyUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Gender      string `json:"gender" validate:"required,max=2"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,max=15"`
	Nickname    string `json:"nickname" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=6"`
}
