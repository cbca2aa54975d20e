package trial

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
	subservice "github.com/fanbase-dev/fanbase/internal/services/subscription"
)

// MockService реализует интерфейс trial.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ActivateTrial(ctx context.Context, profileID string) (*models.Subscription, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func TestTrialHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	profile := &models.Profile{ID: "p1", Handle: "artist"}
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(subservice.TrialDuration)
	sub := &models.Subscription{
		ProfileID:   "p1",
		Status:      models.SubscriptionStatusTrialing,
		TrialUsed:   true,
		PeriodStart: &start,
		PeriodEnd:   &end,
	}

	tests := []struct {
		name           string
		withProfile    bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешная активация",
			withProfile: true,
			setupMock: func(m *MockService) {
				m.On("ActivateTrial", mock.Anything, "p1").Return(sub, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"trial activated"`,
		},
		{
			name:        "пробный период уже использован",
			withProfile: true,
			setupMock: func(m *MockService) {
				m.On("ActivateTrial", mock.Anything, "p1").Return(nil, subservice.ErrTrialUnavailable)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"trial already used or subscription is active"}`,
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
				m.On("ActivateTrial", mock.Anything, "p1").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not activate trial"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/subscription/trial", nil)
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
