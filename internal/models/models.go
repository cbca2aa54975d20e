// Package models содержит доменные структуры платформы: профили, связи
// подписчик-автор и платные подписки, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Статусы платной подписки профиля.
const (
	// SubscriptionStatusNone — подписки никогда не было (запись отсутствует).
	SubscriptionStatusNone = "none"
	// SubscriptionStatusTrialing — действует пробный период.
	SubscriptionStatusTrialing = "trialing"
	// SubscriptionStatusActive — оплаченная подписка.
	SubscriptionStatusActive = "active"
	// SubscriptionStatusExpired — срок подписки или пробного периода истёк.
	SubscriptionStatusExpired = "expired"
	// SubscriptionStatusCanceled — подписка отменена пользователем.
	SubscriptionStatusCanceled = "canceled"
)

// Profile представляет профиль платформы, связанный 1:1 с учётной записью
// внешнего сервиса аутентификации через UserUID.
// AvatarKey — ключ объекта в хранилище, может быть nil (аватар не загружен).
type Profile struct {
	ID          string    `json:"id"`
	UserUID     string    `json:"-"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"-"`
	AvatarKey   *string   `json:"avatar_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subscription описывает состояние платного доступа профиля.
// TrialUsed взводится один раз и больше никогда не сбрасывается.
type Subscription struct {
	ProfileID   string     `json:"profile_id"`
	Status      string     `json:"status"`
	TrialUsed   bool       `json:"trial_used"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
}

// FollowedCreator — автор из списка подписок пользователя вместе
// с датой оформления подписки.
type FollowedCreator struct {
	CreatorID   string    `json:"creator_id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	AvatarKey   *string   `json:"avatar_key,omitempty"`
	FollowedAt  time.Time `json:"followed_at"`
}

// TrialNotice — данные для письма об окончании пробного периода,
// публикуются планировщиком в очередь уведомлений.
type TrialNotice struct {
	ProfileID   string    `json:"profile_id"`
	Email       string    `json:"email"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	PeriodEnd   time.Time `json:"period_end"`
}

// DummyFollow используется для приёма данных из JSON-запроса на подписку
// на автора, прежде чем разрешать handle в идентификатор профиля.
type DummyFollow struct {
	CreatorHandle string `json:"creator_handle" validate:"required,alphanum"` // Handle автора
}

// DummyPresign используется для приёма данных из JSON-запроса на выпуск
// подписанной ссылки на чтение объекта из хранилища.
type DummyPresign struct {
	Key        string `json:"key" validate:"required"` // Ключ объекта в хранилище
	TTLSeconds int    `json:"ttl_seconds"`             // Срок действия ссылки, по умолчанию 7 дней
}
