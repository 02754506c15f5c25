package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-buddy-bot/config"
)

// storeContract runs the behaviour every backend must share. Keys are
// prefixed so runs against a shared server do not collide.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	s = Namespace(s, "test:"+uuid.NewString()+":")

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "a", []byte(`"1"`)))
	require.NoError(t, s.Set(ctx, "a", []byte(`"2"`)))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`"2"`), got)

	require.NoError(t, s.SetMany(ctx, map[string][]byte{"b": []byte("true"), "c": []byte("3")}))
	got, err = s.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)

	require.NoError(t, s.Delete(ctx, "a", "b", "c", "never-set"))
	for _, k := range []string{"a", "b", "c"} {
		_, err := s.Get(ctx, k)
		assert.ErrorIs(t, err, ErrNotFound, k)
	}
	assert.NoError(t, s.Delete(ctx))
}

func TestMemoryStoreContract(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestRedisContract(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	s := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: addr}))
	t.Cleanup(func() { _ = s.Close() })

	storeContract(t, s)
}

func TestPostgresContract(t *testing.T) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
	}
	s, err := NewPostgresDB(config.DBConfig{
		Host:         host,
		Port:         "5432",
		User:         "postgres",
		Password:     os.Getenv("TEST_DB_PASSWORD"),
		DBName:       "postgres",
		SSLMode:      "disable",
		MaxOpenConns: 4,
		MaxIdleConns: 1,
		ConnLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	storeContract(t, s)
}
