package models

// Recommendation представляет одну рекомендацию на игровой день.
// Список рекомендаций общий для всех пользователей; уровень подписки
// ограничивает только количество видимых элементов, не их содержимое.
type Recommendation struct {
	ID             int    `json:"key"`            // Идентификатор (вторичный ключ сортировки)
	League         string `json:"league"`         // Лига
	Home           string `json:"home"`           // Хозяева
	Away           string `json:"away"`           // Гости
	Recommendation string `json:"recommendation"` // Текст рекомендации (первичный ключ сортировки)
}

// DummyRecommendation используется для приёма данных из JSON-запроса
// администратора при загрузке новой рекомендации.
type DummyRecommendation struct {
	League         string `json:"league" validate:"required,max=50"`
	Home           string `json:"home" validate:"required,max=33"`
	Away           string `json:"away" validate:"required,max=33"`
	Recommendation string `json:"recommendation" validate:"required"`
}
