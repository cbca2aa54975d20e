package following

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

	"github.com/fanbase-dev/fanbase/internal/http/middlewarectx"
	"github.com/fanbase-dev/fanbase/internal/models"
)

// MockService реализует интерфейс following.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListFollowing(ctx context.Context, followerProfileID string) ([]*models.FollowedCreator, error) {
	args := m.Called(ctx, followerProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FollowedCreator), args.Error(1)
}

func TestFollowingHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	profile := &models.Profile{ID: "p1", Handle: "fan"}
	followedAt := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	creators := []*models.FollowedCreator{
		{Handle: "artist", DisplayName: "Artist", FollowedAt: followedAt},
	}

	tests := []struct {
		name           string
		withProfile    bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное чтение списка",
			withProfile: true,
			setupMock: func(m *MockService) {
				m.On("ListFollowing", mock.Anything, "p1").Return(creators, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"handle":"artist"`,
		},
		{
			name:        "пустой список остаётся массивом",
			withProfile: true,
			setupMock: func(m *MockService) {
				m.On("ListFollowing", mock.Anything, "p1").Return([]*models.FollowedCreator{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"following":[]`,
		},
		{
			name:           "нет профиля в контексте",
			withProfile:    false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "ошибка сервиса",
			withProfile: true,
			setupMock: func(m *MockService) {
				m.On("ListFollowing", mock.Anything, "p1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list following"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/follow/following", nil)
			if tt.withProfile {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.ProfileKey, profile))
			}

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
