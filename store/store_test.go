package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	require.NotNil(t, s)
	defer s.Close()
}

func TestStore_TokenRoundTrip(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	// Fresh store has no token
	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SetToken(ctx, "first"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", tok)

	// Overwrite
	require.NoError(t, s.SetToken(ctx, "second"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", tok)

	require.NoError(t, s.ClearToken(ctx))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	// Clearing twice is fine
	assert.NoError(t, s.ClearToken(ctx))
}

func TestStore_TokenSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe-cli.db")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken(ctx, "durable"))
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "durable", tok)
}

func TestStore_Settings(t *testing.T) {
	s, err := New(":memory:")
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.SetSetting(ctx, "theme", "dark"))
	require.NoError(t, s.SetToken(ctx, "tok"))

	v, err := s.GetSetting(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	// Clearing the token leaves other settings alone
	require.NoError(t, s.ClearToken(ctx))
	v, err = s.GetSetting(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}

func TestMemoryTokenStore(t *testing.T) {
	m := NewMemoryTokenStore()
	ctx := context.Background()

	tok, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, m.SetToken(ctx, "abc"))
	tok, _ = m.Token(ctx)
	assert.Equal(t, "abc", tok)

	require.NoError(t, m.ClearToken(ctx))
	tok, _ = m.Token(ctx)
	assert.Empty(t, tok)
}
