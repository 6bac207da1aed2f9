package tmpstore

import (
	"context"
	"testing"
	"time"

	"github.com/Drolfothesgnir/markplus/util"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	_, err := store.GetRendered(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	data := Rendered{Format: "html", Output: "<p>x</p>", TextLength: 1, CreatedAt: now}
	require.NoError(t, store.SaveRendered(ctx, "a", data, time.Minute))

	got, err := store.GetRendered(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, data, *got)

	// the copy is not shared
	got.Output = "changed"
	got, err = store.GetRendered(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "<p>x</p>", got.Output)

	now = now.Add(time.Minute)
	_, err = store.GetRendered(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SaveRendered(ctx, "b", data, time.Hour))
	require.NoError(t, store.DeleteRendered(ctx, "b"))
	_, err = store.GetRendered(ctx, "b")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewStore(t *testing.T) {
	_, ok := NewStore(&util.Config{}).(*MemoryStore)
	require.True(t, ok)

	rs, ok := NewStore(&util.Config{RedisAddress: "localhost:6379"}).(*RedisStore)
	require.True(t, ok)
	require.NoError(t, rs.Close())
}
