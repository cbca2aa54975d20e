// Package repository реализует хранилище данных на основе PostgreSQL
// для профилей, связей подписчик-автор и платных подписок. Предоставляет
// методы чтения и изменения записей; инварианты (единственность пробного
// периода, уникальность связи, запрет подписки на себя) закреплены
// ограничениями схемы и условными запросами.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, по которым бизнес-логика различает исходы запросов.
var (
	// ErrProfileNotFound — профиль с указанным идентификатором отсутствует.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrSubscriptionNotFound — запись подписки для профиля отсутствует.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrTrialUnavailable — пробный период уже использован или подписка активна.
	ErrTrialUnavailable = errors.New("trial unavailable")
	// ErrAlreadyFollowing — связь подписчик-автор уже существует.
	ErrAlreadyFollowing = errors.New("already following")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с профилями, подписками и связями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'subscriptions'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table subscriptions missing or query error: %w", err)
	}
	return nil
}
