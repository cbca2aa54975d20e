package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbase-dev/fanbase/internal/models"
)

func TestStorage_ActivateTrial(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	trialEnd := now.Add(30 * 24 * time.Hour)

	tests := []struct {
		name    string
		setup   func(t *testing.T, factory *TestDataFactory, profileID string)
		wantErr error
	}{
		{
			name:  "fresh profile activates trial",
			setup: func(_ *testing.T, _ *TestDataFactory, _ string) {},
		},
		{
			name: "second activation is rejected",
			setup: func(t *testing.T, factory *TestDataFactory, profileID string) {
				factory.CreateSubscription(t, profileID, models.SubscriptionStatusTrialing, true, &now, &trialEnd)
			},
			wantErr: ErrTrialUnavailable,
		},
		{
			name: "expired trial cannot be reused",
			setup: func(t *testing.T, factory *TestDataFactory, profileID string) {
				past := now.Add(-60 * 24 * time.Hour)
				pastEnd := now.Add(-30 * 24 * time.Hour)
				factory.CreateSubscription(t, profileID, models.SubscriptionStatusExpired, true, &past, &pastEnd)
			},
			wantErr: ErrTrialUnavailable,
		},
		{
			name: "active subscription blocks trial",
			setup: func(t *testing.T, factory *TestDataFactory, profileID string) {
				factory.CreateSubscription(t, profileID, models.SubscriptionStatusActive, false, &now, &trialEnd)
			},
			wantErr: ErrTrialUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			profileID := factory.CreateProfile(t, uuid.New().String(), "creator", "Creator", "creator@example.com")
			tt.setup(t, factory, profileID)

			got, err := storage.ActivateTrial(context.Background(), profileID, now, trialEnd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.SubscriptionStatusTrialing, got.Status)
				assert.True(t, got.TrialUsed)
				require.NotNil(t, got.PeriodEnd)
				assert.WithinDuration(t, trialEnd, *got.PeriodEnd, time.Second)

				verification := NewTestVerification(storage)
				verification.VerifySubscriptionStatus(t, profileID, models.SubscriptionStatusTrialing)
			}
		})
	}
}

func TestStorage_ActivateTrial_Concurrent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	profileID := factory.CreateProfile(t, uuid.New().String(), "creator", "Creator", "creator@example.com")

	now := time.Now().UTC()
	trialEnd := now.Add(30 * 24 * time.Hour)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = storage.ActivateTrial(context.Background(), profileID, now, trialEnd)
		}(i)
	}
	wg.Wait()

	// Ровно один вызов выигрывает, остальные получают ErrTrialUnavailable
	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, ErrTrialUnavailable)
		}
	}
	assert.Equal(t, 1, successes)

	verification := NewTestVerification(storage)
	verification.VerifySubscriptionStatus(t, profileID, models.SubscriptionStatusTrialing)
}

func TestStorage_GetSubscription(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	profileID := factory.CreateProfile(t, uuid.New().String(), "creator", "Creator", "creator@example.com")

	t.Run("missing record", func(t *testing.T) {
		got, err := storage.GetSubscription(context.Background(), profileID)
		require.ErrorIs(t, err, ErrSubscriptionNotFound)
		assert.Nil(t, got)
	})

	t.Run("existing record", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		trialEnd := now.Add(30 * 24 * time.Hour)
		factory.CreateSubscription(t, profileID, models.SubscriptionStatusTrialing, true, &now, &trialEnd)

		got, err := storage.GetSubscription(context.Background(), profileID)
		require.NoError(t, err)
		assert.Equal(t, models.SubscriptionStatusTrialing, got.Status)
		assert.True(t, got.TrialUsed)
	})
}

func TestStorage_ExpireDueTrials(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	now := time.Now().UTC()

	dueID := factory.CreateProfile(t, uuid.New().String(), "due", "Due Creator", "due@example.com")
	dueStart := now.Add(-31 * 24 * time.Hour)
	dueEnd := now.Add(-24 * time.Hour)
	factory.CreateSubscription(t, dueID, models.SubscriptionStatusTrialing, true, &dueStart, &dueEnd)

	freshID := factory.CreateProfile(t, uuid.New().String(), "fresh", "Fresh Creator", "fresh@example.com")
	freshEnd := now.Add(24 * time.Hour)
	freshStart := now.Add(-29 * 24 * time.Hour)
	factory.CreateSubscription(t, freshID, models.SubscriptionStatusTrialing, true, &freshStart, &freshEnd)

	notices, err := storage.ExpireDueTrials(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, dueID, notices[0].ProfileID)
	assert.Equal(t, "due@example.com", notices[0].Email)

	verification := NewTestVerification(storage)
	verification.VerifySubscriptionStatus(t, dueID, models.SubscriptionStatusExpired)
	verification.VerifySubscriptionStatus(t, freshID, models.SubscriptionStatusTrialing)
}

func TestStorage_CancelSubscription(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	profileID := factory.CreateProfile(t, uuid.New().String(), "creator", "Creator", "creator@example.com")

	t.Run("no active subscription", func(t *testing.T) {
		got, err := storage.CancelSubscription(context.Background(), profileID)
		require.ErrorIs(t, err, ErrSubscriptionNotFound)
		assert.Nil(t, got)
	})

	t.Run("active trial is canceled", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		trialEnd := now.Add(30 * 24 * time.Hour)
		factory.CreateSubscription(t, profileID, models.SubscriptionStatusTrialing, true, &now, &trialEnd)

		got, err := storage.CancelSubscription(context.Background(), profileID)
		require.NoError(t, err)
		assert.Equal(t, models.SubscriptionStatusCanceled, got.Status)
		assert.True(t, got.TrialUsed)
	})
}

func TestStorage_CreateFollow(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	followerID := factory.CreateProfile(t, uuid.New().String(), "fan", "Fan", "fan@example.com")
	creatorID := factory.CreateProfile(t, uuid.New().String(), "artist", "Artist", "artist@example.com")

	err := storage.CreateFollow(context.Background(), followerID, creatorID)
	require.NoError(t, err)

	// Повторная подписка на того же автора
	err = storage.CreateFollow(context.Background(), followerID, creatorID)
	require.ErrorIs(t, err, ErrAlreadyFollowing)

	verification := NewTestVerification(storage)
	verification.VerifyFollowCount(t, followerID, 1)
}

func TestStorage_RemoveFollow(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	followerID := factory.CreateProfile(t, uuid.New().String(), "fan", "Fan", "fan@example.com")
	creatorID := factory.CreateProfile(t, uuid.New().String(), "artist", "Artist", "artist@example.com")
	factory.CreateFollow(t, followerID, creatorID, time.Now().UTC())

	count, err := storage.RemoveFollow(context.Background(), followerID, creatorID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Удаление несуществующей связи не является ошибкой
	count, err = storage.RemoveFollow(context.Background(), followerID, creatorID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_ListFollowing(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	followerID := factory.CreateProfile(t, uuid.New().String(), "fan", "Fan", "fan@example.com")
	oldID := factory.CreateProfile(t, uuid.New().String(), "oldest", "Oldest Creator", "old@example.com")
	newID := factory.CreateProfile(t, uuid.New().String(), "newest", "Newest Creator", "new@example.com")

	now := time.Now().UTC()
	factory.CreateFollow(t, followerID, oldID, now.Add(-48*time.Hour))
	factory.CreateFollow(t, followerID, newID, now.Add(-time.Hour))

	t.Run("newest follow comes first", func(t *testing.T) {
		got, err := storage.ListFollowing(context.Background(), followerID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "newest", got[0].Handle)
		assert.Equal(t, "oldest", got[1].Handle)
	})

	t.Run("no follows yields empty slice", func(t *testing.T) {
		loneID := factory.CreateProfile(t, uuid.New().String(), "loner", "Loner", "loner@example.com")

		got, err := storage.ListFollowing(context.Background(), loneID)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Len(t, got, 0)
	})
}

func TestStorage_GetProfile(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	profileID := factory.CreateProfile(t, userUID, "artist", "Artist", "artist@example.com")

	t.Run("by user uid", func(t *testing.T) {
		got, err := storage.GetProfileByUserUID(context.Background(), userUID)
		require.NoError(t, err)
		assert.Equal(t, profileID, got.ID)
		assert.Equal(t, "artist", got.Handle)
		assert.Nil(t, got.AvatarKey)
	})

	t.Run("by handle", func(t *testing.T) {
		got, err := storage.GetProfileByHandle(context.Background(), "artist")
		require.NoError(t, err)
		assert.Equal(t, profileID, got.ID)
	})

	t.Run("unknown handle", func(t *testing.T) {
		got, err := storage.GetProfileByHandle(context.Background(), "ghost")
		require.ErrorIs(t, err, ErrProfileNotFound)
		assert.Nil(t, got)
	})
}
