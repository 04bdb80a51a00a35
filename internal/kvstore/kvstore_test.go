package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_NotConfigured(t *testing.T) {
	s, err := Open(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, s)
}

func TestBadgerStore_InMemory(t *testing.T) {
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	_, found, err := s.Get(ctx, "groups")
	require.NoError(t, err)
	assert.False(t, found, "missing key should report not found")

	require.NoError(t, s.Set(ctx, "groups", []byte(`[]`)))
	value, found, err := s.Get(ctx, "groups")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`[]`), value)

	require.NoError(t, s.Set(ctx, "groups", []byte(`[{"id":"1"}]`)))
	value, _, err = s.Get(ctx, "groups")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), value, "set replaces the whole value")

	assert.NoError(t, s.Ping(ctx))
}

func TestBadgerStore_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := DefaultConfig(dir)
	s, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "groups", []byte(`["persisted"]`)))
	require.NoError(t, s.Close())

	s2, err := Open(cfg)
	require.NoError(t, err)
	defer s2.Close()

	value, found, err := s2.Get(ctx, "groups")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`["persisted"]`), value)
}

func TestBadgerStore_CanceledContext(t *testing.T) {
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Set(ctx, "k", []byte("v")))
	_, _, err = s.Get(ctx, "k")
	assert.Error(t, err)
}
