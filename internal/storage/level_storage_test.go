package storage

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/annel0/rogue-terrain/internal/item"
	"github.com/annel0/rogue-terrain/internal/level"
	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/annel0/rogue-terrain/internal/vec"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LevelStorage {
	t.Helper()
	ls, err := NewInMemoryLevelStorage()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ls.Close() })
	return ls
}

func assertSameLevel(t *testing.T, want, got *level.Level) {
	t.Helper()
	require.Equal(t, want.Width(), got.Width())
	require.Equal(t, want.Height(), got.Height())
	for y := 0; y < want.Height(); y++ {
		for x := 0; x < want.Width(); x++ {
			v := vec.Vec2{X: x, Y: y}
			w, g := want.At(v), got.At(v)
			if w == nil {
				assert.Nil(t, g, "клетка %s", v)
				continue
			}
			require.NotNil(t, g, "клетка %s", v)
			assert.Equal(t, w.Record(), g.Record(), "клетка %s", v)
		}
	}
	assert.Equal(t, want.FurnitureMap(), got.FurnitureMap())
	assert.Equal(t, want.ItemMap(), got.ItemMap())
	assert.Equal(t, want.String(), got.String())
}

func TestSaveAndLoadGeneratedLevel(t *testing.T) {
	ls := newTestStorage(t)
	ctx := context.Background()

	lvl, err := level.NewGenerator(24, 10, 99).Generate(ctx, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	require.NoError(t, ls.Save(ctx, "cave-1", lvl))
	loaded, err := ls.Load(ctx, "cave-1")
	require.NoError(t, err)

	assertSameLevel(t, lvl, loaded)
}

func TestSaveKeepsItemsAndFurniture(t *testing.T) {
	ls := newTestStorage(t)
	ctx := context.Background()

	lvl := level.New(3, 1)
	require.NoError(t, lvl.Set(vec.Vec2{X: 0, Y: 0}, square.Get(square.NewSquareType(square.Floor))))
	require.NoError(t, lvl.Set(vec.Vec2{X: 1, Y: 0}, square.Get(square.WithDepth(0.7))))
	// (2,0) остаётся пустой

	require.NoError(t, lvl.AddFurniture(vec.Vec2{X: 1, Y: 0}, "bridge"))
	require.NoError(t, lvl.DropItems(vec.Vec2{X: 0, Y: 0}, []*item.Item{item.New("sword"), item.NewWithPlural("knife", "knives")}))

	require.NoError(t, ls.Save(ctx, "strip", lvl))
	loaded, err := ls.Load(ctx, "strip")
	require.NoError(t, err)

	assertSameLevel(t, lvl, loaded)
	assert.Nil(t, loaded.At(vec.Vec2{X: 2, Y: 0}))
	assert.InDelta(t, 0.7, loaded.At(vec.Vec2{X: 1, Y: 0}).Depth(), 1e-9)
}

func TestLoadRejectsItemsOutsideLevel(t *testing.T) {
	ls := newTestStorage(t)
	ctx := context.Background()

	lvl := level.New(1, 1)
	require.NoError(t, lvl.Set(vec.Vec2{X: 0, Y: 0}, square.Get(square.NewSquareType(square.Floor))))
	snap := snapshotOf(lvl)
	snap.Items = map[string][]*item.Item{
		vec.Vec2{X: 9, Y: 9}.Key(): {item.New("sword")},
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, ls.db.Update(func(txn *badger.Txn) error {
		return txn.Set(levelKey("corrupt"), ls.encoder.EncodeAll(data, nil))
	}))

	_, err = ls.Load(ctx, "corrupt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9:9")
}

func TestLoadMissingLevel(t *testing.T) {
	ls := newTestStorage(t)

	_, err := ls.Load(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestListAndDelete(t *testing.T) {
	ls := newTestStorage(t)
	ctx := context.Background()

	lvl := level.New(1, 1)
	require.NoError(t, lvl.Set(vec.Vec2{}, square.Get(square.NewSquareType(square.Sand))))

	for _, id := range []string{"b", "a", "c"} {
		require.NoError(t, ls.Save(ctx, id, lvl))
	}
	ids, err := ls.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, ls.Delete("b"))
	require.NoError(t, ls.Delete("missing"))

	ids, err = ls.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)

	_, err = ls.Load(ctx, "b")
	assert.ErrorIs(t, err, ErrLevelNotFound)
}

func TestClosedStorage(t *testing.T) {
	ls, err := NewInMemoryLevelStorage()
	require.NoError(t, err)
	require.NoError(t, ls.Close())
	require.NoError(t, ls.Close())

	assert.Error(t, ls.Save(context.Background(), "x", level.New(1, 1)))
	_, err = ls.Load(context.Background(), "x")
	assert.Error(t, err)
	_, err = ls.List()
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	ls := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, ls.Save(ctx, "x", level.New(1, 1)), context.Canceled)
}

func TestDiskStorage(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	lvl := level.New(2, 1)
	require.NoError(t, lvl.Set(vec.Vec2{X: 0, Y: 0}, square.Get(square.NewSquareType(square.Magma))))
	require.NoError(t, lvl.Set(vec.Vec2{X: 1, Y: 0}, square.Get(square.NewSquareType(square.Hill))))

	ls, err := NewLevelStorage(dir)
	require.NoError(t, err)
	require.NoError(t, ls.Save(ctx, "persist", lvl))
	require.NoError(t, ls.Close())

	reopened, err := NewLevelStorage(dir)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx, "persist")
	require.NoError(t, err)
	assertSameLevel(t, lvl, loaded)
}
