package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/freshcart/internal/models"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *mockStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *mockStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(ctx, keys)
	return args.Get(0).(*redis.IntCmd)
}

func TestGetCategoriesHit(t *testing.T) {
	st := &mockStore{}
	st.On("Get", mock.Anything, categoriesKey).
		Return(redis.NewStringResult(`[{"name":"Fruits","productCount":3}]`, nil))
	c := &Categories{rdb: st, ttl: time.Minute}

	cats, ok := c.GetCategories(context.Background())
	require.True(t, ok)
	require.Len(t, cats, 1)
	require.Equal(t, "Fruits", cats[0].Name)
	require.EqualValues(t, 3, cats[0].ProductCount)
}

func TestGetCategoriesMissAndError(t *testing.T) {
	st := &mockStore{}
	st.On("Get", mock.Anything, categoriesKey).Return(redis.NewStringResult("", redis.Nil)).Once()
	st.On("Get", mock.Anything, categoriesKey).Return(redis.NewStringResult("", errors.New("conn refused"))).Once()
	st.On("Get", mock.Anything, categoriesKey).Return(redis.NewStringResult("not json", nil)).Once()
	c := &Categories{rdb: st, ttl: time.Minute}

	for i := 0; i < 3; i++ {
		_, ok := c.GetCategories(context.Background())
		require.False(t, ok)
	}
	st.AssertExpectations(t)
}

func TestSetAndInvalidate(t *testing.T) {
	st := &mockStore{}
	st.On("Set", mock.Anything, categoriesKey, mock.Anything, 2*time.Minute).Return(redis.NewStatusResult("OK", nil))
	st.On("Del", mock.Anything, []string{categoriesKey}).Return(redis.NewIntResult(1, nil))
	c := &Categories{rdb: st, ttl: 2 * time.Minute}

	c.SetCategories(context.Background(), []models.Category{{Name: "Dairy"}})
	c.Invalidate(context.Background())
	st.AssertExpectations(t)
}
