package models

import "time"

// Subscription представляет активную подписку пользователя.
// На одного пользователя приходится не более одной записи: новый платёж
// перезаписывает старую, а не накапливается. Запись создаётся только после
// проверенного платёжного вебхука и удаляется ежедневной зачисткой,
// когда ExpiresAt оказывается в прошлом.
type Subscription struct {
	Nickname     string    // Нормализованный никнейм владельца (ключ записи)
	Tier         string    // Уровень подписки: NOVA A или NOVA B
	SubscribedAt time.Time // Момент подтверждения платежа
	ExpiresAt    time.Time // Момент истечения, SubscribedAt + 28 дней
}

// PaymentEvent — полезная нагрузка вебхука о новом платеже.
// AmountPaid приходит в минимальных денежных единицах.
type PaymentEvent struct {
	Nickname   string `json:"nickname" validate:"required"`
	AmountPaid int    `json:"amount_paid" validate:"required,gt=0"`
}
