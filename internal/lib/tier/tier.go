// Package tier реализует политику доступа к контенту по уровню подписки.
//
// Подписка NOVA B открывает весь список рекомендаций, NOVA A — половину
// с обычным округлением. Отсутствие подписки (или нераспознанный уровень)
// не открывает ничего. Уровень выводится из суммы платежа точным сравнением
// с двумя настроенными ценами.
package tier

import (
	"errors"
	"math"
)

// Уровни подписки в том виде, в котором они хранятся и приходят от провайдера.
const (
	NovaA = "NOVA A"
	NovaB = "NOVA B"
)

// ErrUnrecognizedAmount означает, что сумма платежа не совпала ни с одной
// из настроенных цен. Такой платёж не порождает подписку.
var ErrUnrecognizedAmount = errors.New("payment amount matches no known price point")

// FromAmount сопоставляет сумму платежа с уровнем подписки.
// Сравнение строго точное, без допусков.
func FromAmount(amountPaid, priceA, priceB int) (string, error) {
	switch amountPaid {
	case priceA:
		return NovaA, nil
	case priceB:
		return NovaB, nil
	default:
		return "", ErrUnrecognizedAmount
	}
}

// VisibleCount возвращает, сколько элементов из totalItems доступно
// обладателю данного уровня. NOVA B — все, NOVA A — round(0.5 * total)
// с округлением половины от нуля, любой другой уровень — ноль.
func VisibleCount(subscriptionTier string, totalItems int) int {
	if totalItems < 0 {
		return 0
	}
	switch subscriptionTier {
	case NovaB:
		return totalItems
	case NovaA:
		return int(math.Round(0.5 * float64(totalItems)))
	default:
		return 0
	}
}
