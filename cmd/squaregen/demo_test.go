package main

import (
	"strings"
	"testing"

	"github.com/annel0/rogue-terrain/internal/level"
	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/annel0/rogue-terrain/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHazardDemo(t *testing.T) {
	lvl := level.New(4, 1)
	require.NoError(t, lvl.Set(vec.Vec2{X: 0}, square.Get(square.NewSquareType(square.Floor))))
	require.NoError(t, lvl.Set(vec.Vec2{X: 1}, square.Get(square.NewSquareType(square.Magma))))
	require.NoError(t, lvl.Set(vec.Vec2{X: 2}, square.Get(square.NewSquareType(square.Water))))
	require.NoError(t, lvl.Set(vec.Vec2{X: 3}, square.Get(square.WithDepth(0.5))))

	out := strings.Join(runHazardDemo(lvl), "\n")

	assert.Contains(t, out, "the goblin стоит на (0,0) рядом с магмой")
	assert.Contains(t, out, "the goblin на (1,0): burned to death")
	assert.Contains(t, out, "the bat на (1,0): жив")
	assert.Contains(t, out, "you на (2,0): drowned")
	assert.Contains(t, out, "the sailor на (2,0): killed by the kraken")
	assert.Contains(t, out, "the eel на (2,0): жив")
	assert.Contains(t, out, "the heron на (3,0): жив")
	assert.Contains(t, out, "2 scrolls burn in the magma.")
	assert.Contains(t, out, "2 knives sink in the water.")
}

func TestRunHazardDemoSkipsBridges(t *testing.T) {
	lvl := level.New(1, 1)
	require.NoError(t, lvl.Set(vec.Vec2{}, square.Get(square.NewSquareType(square.Magma))))
	require.NoError(t, lvl.AddFurniture(vec.Vec2{}, "bridge"))

	assert.Empty(t, runHazardDemo(lvl))
}
