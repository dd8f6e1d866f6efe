package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/pixelart/apps/go-server/internal/session"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, err := st.Get(ctx, "anon:1")
	assert.ErrorIs(t, err, ErrNotFound)

	s := session.New("anon:1", 20)
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Get(ctx, "anon:1")
	require.NoError(t, err)
	assert.Same(t, s, got)

	replacement := session.New("anon:1", 20)
	require.NoError(t, st.Save(ctx, replacement))
	got, err = st.Get(ctx, "anon:1")
	require.NoError(t, err)
	assert.Same(t, replacement, got)

	require.NoError(t, st.Delete(ctx, "anon:1"))
	_, err = st.Get(ctx, "anon:1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, st.Delete(ctx, "missing"))
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owner := fmt.Sprintf("anon:%d", i%4)
			_ = st.Save(ctx, session.New(owner, 20))
			_, _ = st.Get(ctx, owner)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		_, err := st.Get(ctx, fmt.Sprintf("anon:%d", i))
		assert.NoError(t, err)
	}
}
