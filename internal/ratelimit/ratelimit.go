// Package ratelimit реализует ограничение частоты запросов по ключу клиента.
//
// На каждый ключ (никнейм сессии либо адрес клиента) заводится отдельный
// token bucket: burst равен лимиту за окно, пополнение — лимит за окно.
// Превышение лимита жёстко отклоняется, очередей и деградации нет.
// Счётчики живут только в памяти процесса; при нескольких экземплярах
// сервиса лимиты считаются независимо — известное ограничение.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// evictAfter задаёт, сколько окон бездействия ключ живёт до вычистки.
const evictAfter = 3

// Keyed ограничивает частоту запросов отдельно для каждого ключа клиента.
type Keyed struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    int
	window   time.Duration
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewKeyed создает ограничитель, допускающий не более limit запросов
// на ключ за окно window.
func NewKeyed(limit int, window time.Duration) *Keyed {
	return &Keyed{
		limiters: make(map[string]*entry),
		limit:    limit,
		window:   window,
	}
}

// Allow сообщает, допустим ли запрос с данным ключом в момент now.
// Инкремент и проверка выполняются под одной блокировкой: параллельные
// запросы не могут совместно превысить лимит.
func (k *Keyed) Allow(key string, now time.Time) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.limiters[key]
	if !ok {
		e = &entry{
			lim: rate.NewLimiter(rate.Every(k.window/time.Duration(k.limit)), k.limit),
		}
		k.limiters[key] = e
	}
	e.lastSeen = now

	k.evictStale(now)

	return e.lim.AllowN(now, 1)
}

// evictStale удаляет ключи, не появлявшиеся несколько окон подряд.
// Вызывается под уже взятой блокировкой.
func (k *Keyed) evictStale(now time.Time) {
	if len(k.limiters) < 1024 {
		return
	}
	cutoff := now.Add(-time.Duration(evictAfter) * k.window)
	for key, e := range k.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(k.limiters, key)
		}
	}
}
