package level

import (
	"context"
	"math/rand"
	"testing"

	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/annel0/rogue-terrain/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Deterministic(t *testing.T) {
	a, err := NewGenerator(40, 20, 1234).Generate(context.Background(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	b, err := NewGenerator(40, 20, 1234).Generate(context.Background(), rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestGenerator_BorderAndFill(t *testing.T) {
	lvl, err := NewGenerator(30, 12, 77).Generate(context.Background(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for y := 0; y < lvl.Height(); y++ {
		for x := 0; x < lvl.Width(); x++ {
			s := lvl.At(vec.Vec2{X: x, Y: y})
			require.NotNil(t, s)
			edge := x == 0 || y == 0 || x == lvl.Width()-1 || y == lvl.Height()-1
			assert.Equal(t, edge, s.ID() == square.BorderGuard, "клетка (%d,%d)", x, y)
		}
	}
}

func TestGenerator_QueuedPrefix(t *testing.T) {
	g := NewGenerator(5, 4, 3)
	g.Bands = []Band{{
		Name: "all",
		Max:  1.01,
		Factory: square.NewFactoryWithFirst(
			[]square.SquareType{square.NewSquareType(square.Sand), square.NewSquareType(square.Magma)},
			[]square.SquareType{square.NewSquareType(square.Floor)},
			[]float64{1}),
	}}

	lvl, err := g.Generate(context.Background(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// Внутренние клетки заполняются построчно: (1,1), (2,1), (3,1), ...
	assert.Equal(t, square.Magma, lvl.At(vec.Vec2{X: 1, Y: 1}).ID())
	assert.Equal(t, square.Sand, lvl.At(vec.Vec2{X: 2, Y: 1}).ID())
	assert.Equal(t, square.Floor, lvl.At(vec.Vec2{X: 3, Y: 1}).ID())
	assert.Equal(t, square.Floor, lvl.At(vec.Vec2{X: 1, Y: 2}).ID())
}

func TestGenerator_Bridges(t *testing.T) {
	g := NewGenerator(10, 3, 3)
	g.Bands = []Band{{Name: "lava", Max: 1.01, Factory: square.Single(square.NewSquareType(square.Magma))}}
	g.Bridges = 2

	lvl, err := g.Generate(context.Background(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, bridged := lvl.Furniture(vec.Vec2{X: 2, Y: 1})
	assert.True(t, bridged)
	_, bridged = lvl.Furniture(vec.Vec2{X: 3, Y: 1})
	assert.False(t, bridged)
}

func TestGenerator_Validate(t *testing.T) {
	g := NewGenerator(2, 2, 1)
	assert.Error(t, g.Validate())

	g = NewGenerator(10, 10, 1)
	g.Bands[1].Max = 0.1
	assert.Error(t, g.Validate())

	g = NewGenerator(10, 10, 1)
	g.Border = nil
	assert.Error(t, g.Validate())

	g = NewGenerator(10, 10, 1)
	g.Bands[0].Factory = nil
	assert.Error(t, g.Validate())

	_, err := NewGenerator(1, 1, 1).Generate(context.Background(), rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestGenerator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenerator(10, 10, 1).Generate(ctx, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, context.Canceled)
}
