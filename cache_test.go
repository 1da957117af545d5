package testmaker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SonnyS10/testmaker"
)

type countingStore struct {
	testmaker.Store
	loads int
}

func (s *countingStore) Load(
	ctx context.Context, name string,
) (*testmaker.Timeline, error) {
	s.loads++
	return s.Store.Load(ctx, name)
}

func TestCachedStoreHit(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: testmaker.NewMemoryStore()}
	store := testmaker.NewCachedStore(inner, 4)
	defer func() { _ = store.Close() }()

	assert.NoError(t, store.Save(ctx, attentionTask()))

	for i := 0; i < 2; i++ {
		tl, err := store.Load(ctx, "Attention Task Demo")
		assert.NoError(t, err)
		assert.Equal(t, 4, tl.Len())
	}
	assert.Equal(t, 0, inner.loads)
}

func TestCachedStoreMiss(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: testmaker.NewMemoryStore()}
	assert.NoError(t, inner.Save(ctx, namedTimeline("warm")))

	store := testmaker.NewCachedStore(inner, 4)
	defer func() { _ = store.Close() }()

	_, err := store.Load(ctx, "warm")
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.loads)

	_, err = store.Load(ctx, "warm")
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.loads)
}

func TestCachedStoreEviction(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: testmaker.NewMemoryStore()}
	store := testmaker.NewCachedStore(inner, 2)
	defer func() { _ = store.Close() }()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		assert.NoError(t, store.Save(ctx, namedTimeline(name)))
	}

	// alpha was pushed out by gamma
	_, err := store.Load(ctx, "alpha")
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.loads)

	_, err = store.Load(ctx, "gamma")
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.loads)
}

func TestCachedStoreDeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: testmaker.NewMemoryStore()}
	store := testmaker.NewCachedStore(inner, 4)
	defer func() { _ = store.Close() }()

	assert.NoError(t, store.Save(ctx, namedTimeline("gone")))
	assert.NoError(t, store.Delete(ctx, "gone"))

	_, err := store.Load(ctx, "gone")
	assert.ErrorIs(t, err, testmaker.ErrTimelineNotFound)
}

func TestCachedStoreSaveRefreshes(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: testmaker.NewMemoryStore()}
	store := testmaker.NewCachedStore(inner, 4)
	defer func() { _ = store.Close() }()

	tl := namedTimeline("draft")
	assert.NoError(t, store.Save(ctx, tl))

	tl.Add(testmaker.NewAudio(500, "/stimuli/beep.wav", 200, 0.8))
	assert.NoError(t, store.Save(ctx, tl))

	loaded, err := store.Load(ctx, "draft")
	assert.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, 0, inner.loads)
}
