package presign

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fanbase-dev/fanbase/internal/storage/objectstore"
)

// MockSigner реализует интерфейс presign.Signer
type MockSigner struct {
	mock.Mock
}

func (m *MockSigner) IssueReadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func TestPresignHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockSigner)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный выпуск ссылки",
			body: `{"key":"media/video.mp4","ttl_seconds":3600}`,
			setupMock: func(m *MockSigner) {
				m.On("IssueReadURL", mock.Anything, "media/video.mp4", time.Hour).
					Return("https://storage.example.com/media/video.mp4?X-Amz-Signature=abc", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `X-Amz-Signature`,
		},
		{
			name:           "некорректный json",
			body:           `{key}`,
			setupMock:      func(_ *MockSigner) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "пустой ключ объекта",
			body:           `{"key":""}`,
			setupMock:      func(_ *MockSigner) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Key is a required field`,
		},
		{
			name: "хранилище отклонило ключ",
			body: `{"key":"   "}`,
			setupMock: func(m *MockSigner) {
				m.On("IssueReadURL", mock.Anything, "   ", time.Duration(0)).
					Return("", objectstore.ErrEmptyKey)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"object key is required"}`,
		},
		{
			name: "ошибка провайдера хранилища",
			body: `{"key":"media/video.mp4"}`,
			setupMock: func(m *MockSigner) {
				m.On("IssueReadURL", mock.Anything, "media/video.mp4", time.Duration(0)).
					Return("", errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not issue read url"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSigner := new(MockSigner)
			tt.setupMock(mockSigner)

			handler := New(logger, mockSigner)

			req := httptest.NewRequest(http.MethodPost, "/upload/presign/read", strings.NewReader(tt.body))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockSigner.AssertExpectations(t)
		})
	}
}
