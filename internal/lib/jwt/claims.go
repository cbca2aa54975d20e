// Package jwt реализует парсинг и генерацию JWT токенов с пользовательскими claim полями.
//
// Токены выпускает внешний сервис аутентификации; это приложение только
// проверяет подпись и извлекает из claims идентификатор пользователя.
// Maker определяет интерфейс для работы с токенами, MakerImpl — конкретная
// реализация с использованием общего секретного ключа.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создает токен с указанием username и uid пользователя
	GenerateToken(username, userUID string) (string, error)
	// ParseToken возвращает *CustomClaims с данными пользователя
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
