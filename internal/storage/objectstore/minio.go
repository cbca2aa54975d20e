// Package objectstore оборачивает S3-совместимое хранилище медиа.
// Единственная операция — выпуск подписанной ссылки на чтение объекта
// с ограниченным сроком действия; запись объектов выполняет внешний сервис.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/fanbase-dev/fanbase/internal/config"
)

// MaxPresignTTL — максимальный и применяемый по умолчанию срок действия
// подписанной ссылки (используется для аватаров профилей).
const MaxPresignTTL = 7 * 24 * time.Hour

// ErrEmptyKey — ключ объекта не задан; проверяется до обращения к хранилищу.
var ErrEmptyKey = errors.New("object key is empty")

// Signer выпускает подписанные ссылки на чтение объектов одного бакета.
type Signer struct {
	client *minio.Client
	bucket string
}

// New создаёт клиент хранилища по настройкам конфига.
func New(cfg config.ObjectStorage) (*Signer, error) {
	const op = "objectstore.New"

	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Signer{
		client: client,
		bucket: cfg.S3Bucket,
	}, nil
}

// IssueReadURL возвращает подписанную ссылку на чтение объекта key,
// действительную в течение ttl. Пустой ключ отклоняется без сетевого
// вызова; неположительный или превышающий максимум ttl сводится к MaxPresignTTL.
// Ошибка провайдера хранилища возвращается без изменений.
func (s *Signer) IssueReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	const op = "objectstore.IssueReadURL"

	if key == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}
	if ttl <= 0 || ttl > MaxPresignTTL {
		ttl = MaxPresignTTL
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return u.String(), nil
}
