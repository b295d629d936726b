// Package nickname реализует нормализацию никнеймов пользователей.
//
// Никнейм — единственный идентификатор пользователя в системе, поэтому
// нормализация должна применяться одинаково во всех местах сравнения:
// при регистрации, входе и поиске подписки. Два никнейма, отличающиеся
// только регистром или пробелами по краям, считаются одним и тем же.
package nickname

import "strings"

// Normalize убирает пробелы по краям строки и приводит её к нижнему регистру.
// Функция идемпотентна: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
