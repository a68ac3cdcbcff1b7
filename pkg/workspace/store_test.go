package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFindings() []linter.Finding {
	return []linter.Finding{
		{
			Rule:     "unclosed-string",
			Severity: linter.SeverityError,
			Category: linter.CategorySyntax,
			Message:  "Unclosed string literal",
			Range:    linter.Range{StartLine: 0, EndLine: 0, EndColumn: 17},
		},
	}
}

func setupRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisOptions{
		URL:        "redis://" + mr.Addr(),
		TTL:        ttl,
		PoolSize:   4,
		MaxRetries: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

// storeContract runs the behaviour every DiagnosticStore must share
func storeContract(t *testing.T, store DiagnosticStore) {
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "file:///a.alloy")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "file:///b.alloy", sampleFindings()))
	require.NoError(t, store.Set(ctx, "file:///a.alloy", sampleFindings()))

	got, ok, err := store.Get(ctx, "file:///a.alloy")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleFindings(), got)

	uris, err := store.URIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"file:///a.alloy", "file:///b.alloy"}, uris)

	// replace, never merge
	require.NoError(t, store.Set(ctx, "file:///a.alloy", []linter.Finding{}))
	got, ok, err = store.Get(ctx, "file:///a.alloy")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)

	require.NoError(t, store.Delete(ctx, "file:///a.alloy"))
	_, ok, err = store.Get(ctx, "file:///a.alloy")
	require.NoError(t, err)
	assert.False(t, ok)

	uris, err = store.URIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"file:///b.alloy"}, uris)

	// deleting an unknown uri is not an error
	assert.NoError(t, store.Delete(ctx, "file:///missing.alloy"))
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	findings := sampleFindings()
	require.NoError(t, store.Set(ctx, "u", findings))
	findings[0].Message = "mutated"

	got, _, err := store.Get(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, "Unclosed string literal", got[0].Message)
}

func TestRedisStore(t *testing.T) {
	store, _ := setupRedisStore(t, 0)
	storeContract(t, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestRedisStoreKeys(t *testing.T) {
	store, mr := setupRedisStore(t, 0)
	require.NoError(t, store.Set(context.Background(), "file:///a.alloy", sampleFindings()))

	assert.True(t, mr.Exists("alloykit:diagnostics:file:///a.alloy"))
	members, err := mr.Members("alloykit:documents")
	require.NoError(t, err)
	assert.Equal(t, []string{"file:///a.alloy"}, members)
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := setupRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "file:///a.alloy", sampleFindings()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := store.Get(ctx, "file:///a.alloy")
	require.NoError(t, err)
	assert.False(t, ok)

	uris, err := store.URIs(ctx)
	require.NoError(t, err)
	assert.Empty(t, uris)
}

func TestRedisStoreCorruptEntry(t *testing.T) {
	store, mr := setupRedisStore(t, 0)
	require.NoError(t, mr.Set("alloykit:diagnostics:bad", "{not json"))

	_, ok, err := store.Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("alloykit:diagnostics:bad"))
}

func TestRedisStoreCustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreFromClient(client, "team-a:", 0)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "u", nil))
	assert.True(t, mr.Exists("team-a:diagnostics:u"))

	got, ok, err := store.Get(context.Background(), "u")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestNewRedisStoreErrors(t *testing.T) {
	_, err := NewRedisStore(context.Background(), RedisOptions{URL: "not a url"})
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisStore(context.Background(), RedisOptions{URL: "redis://" + addr})
	assert.Error(t, err)
}
