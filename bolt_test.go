package testmaker_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SonnyS10/testmaker"
)

func TestBoltStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.db")

	store, err := testmaker.OpenBoltStore(path, nil)
	assert.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.NoError(t, store.Save(ctx, attentionTask()))

	tl, err := store.Load(ctx, "Attention Task Demo")
	assert.NoError(t, err)
	assert.Equal(t, 4, tl.Len())
	assert.Equal(t,
		"Multi-modal attention test with synchronized visual and "+
			"auditory stimuli",
		tl.Description,
	)

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Attention Task Demo"}, names)

	assert.NoError(t, store.Delete(ctx, "Attention Task Demo"))
	err = store.Delete(ctx, "Attention Task Demo")
	assert.ErrorIs(t, err, testmaker.ErrTimelineNotFound)
}

func TestBoltStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.db")

	store, err := testmaker.OpenBoltStore(path, nil)
	assert.NoError(t, err)
	assert.NoError(t, store.Save(ctx, namedTimeline("alpha")))
	assert.NoError(t, store.Save(ctx, namedTimeline("beta")))
	assert.NoError(t, store.Close())

	store, err = testmaker.OpenBoltStore(path, nil)
	assert.NoError(t, err)
	defer func() { _ = store.Close() }()

	names, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	tl, err := store.Load(ctx, "alpha")
	assert.NoError(t, err)
	assert.Equal(t, 1, tl.Len())
}

func TestBoltStoreDeleteMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")

	store, err := testmaker.OpenBoltStore(path, nil)
	assert.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = store.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, testmaker.ErrTimelineNotFound)

	_, err = store.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, testmaker.ErrTimelineNotFound)
}
