// Package signature реализует проверку подлинности входящих платёжных вебхуков.
//
// Провайдер подписывает каждый запрос HMAC-SHA512 от точного сырого тела
// запроса. Пересериализованное тело использовать нельзя: изменение порядка
// байт или пробелов молча ломает проверку. Эта подпись — единственная
// гарантия подлинности подтверждения платежа.
package signature

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Compute возвращает hex-представление HMAC-SHA512 от тела запроса.
func Compute(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify сравнивает подпись из заголовка с вычисленной от сырого тела.
// Сравнение выполняется за константное время, чтобы исключить утечку
// по таймингу. Пустая подпись всегда отклоняется.
func Verify(body []byte, providedSignature, secret string) bool {
	if providedSignature == "" {
		return false
	}
	expected := Compute(body, secret)
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
