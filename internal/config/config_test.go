package config

import (
	"bytes"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/rogue-terrain/internal/logging"
	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
generator:
  width: 20
  height: 10
  seed: 9
  bands:
    - {name: wet, max: 0.5, factory: wet}
    - {name: dry, max: 1.01, factory: dry}
factories:
  wet:
    first:
      - {id: MAGMA}
      - {id: WATER_WITH_DEPTH, depth: 0.4}
    squares:
      - {id: WATER, weight: 1}
  dry:
    squares:
      - {id: grass, weight: 1}
      - {id: HILL, weight: 3}
metrics:
  addr: ":9999"
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Generator.Width)
	assert.Equal(t, int64(9), cfg.Generator.Seed)
	assert.Equal(t, 0.08, cfg.Generator.NoiseScale, "значение по умолчанию сохраняется")
	assert.Equal(t, "data", cfg.Storage.Path)
	assert.Equal(t, ":9999", cfg.Metrics.GetMetricsAddr())
	require.Len(t, cfg.Factories["dry"].Squares, 2)
	assert.Equal(t, 3.0, cfg.Factories["dry"].Squares[1].Weight)
	assert.Equal(t, "HILL", cfg.Factories["dry"].Squares[1].ID)
}

func TestBuildFactory(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	f, err := BuildFactory(cfg.Factories["wet"])
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, square.WithDepth(0.4), f.GetRandom(rng))
	assert.Equal(t, square.NewSquareType(square.Magma), f.GetRandom(rng))
	assert.Equal(t, square.NewSquareType(square.Water), f.GetRandom(rng))
}

func TestBuildFactory_Errors(t *testing.T) {
	depth := 1.0
	tests := map[string]FactoryConfig{
		"пустой список":     {},
		"неизвестный тип":   {Squares: []WeightedConfig{{TypeConfig: TypeConfig{ID: "LAVA"}, Weight: 1}}},
		"глубина не у воды": {Squares: []WeightedConfig{{TypeConfig: TypeConfig{ID: "MAGMA", Depth: &depth}, Weight: 1}}},
		"отрицательный вес": {Squares: []WeightedConfig{{TypeConfig: TypeConfig{ID: "FLOOR"}, Weight: -1}}},
		"нулевые веса":      {Squares: []WeightedConfig{{TypeConfig: TypeConfig{ID: "FLOOR"}, Weight: 0}}},
		"вес NaN": {Squares: []WeightedConfig{
			{TypeConfig: TypeConfig{ID: "FLOOR"}, Weight: 1},
			{TypeConfig: TypeConfig{ID: "HILL"}, Weight: math.NaN()},
		}},
		"бесконечный вес": {Squares: []WeightedConfig{{TypeConfig: TypeConfig{ID: "FLOOR"}, Weight: math.Inf(1)}}},
		"плохая очередь": {
			First:   []TypeConfig{{ID: "???"}},
			Squares: []WeightedConfig{{TypeConfig: TypeConfig{ID: "FLOOR"}, Weight: 1}},
		},
	}
	for name, fc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := BuildFactory(fc)
			assert.Error(t, err)
		})
	}
}

func TestBuildGenerator(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	g, err := cfg.BuildGenerator()
	require.NoError(t, err)
	require.Len(t, g.Bands, 2)
	assert.Equal(t, "wet", g.Bands[0].Name)
	assert.Equal(t, 2, g.Bands[0].Factory.Queued())

	cfg.Generator.Bands[1].Factory = "missing"
	_, err = cfg.BuildGenerator()
	assert.Error(t, err)

	def, err := Default().BuildGenerator()
	require.NoError(t, err)
	assert.Len(t, def.Bands, 5)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "terrain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Generator.Height)

	t.Setenv("TERRAIN_CONFIG", path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Generator.Height)

	t.Setenv("TERRAIN_CONFIG", "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "terrain.yaml"))
	require.NoError(t, err)

	g, err := cfg.BuildGenerator()
	require.NoError(t, err)
	assert.Len(t, g.Bands, 5)
	assert.Equal(t, 6, g.Bridges)
}

func TestMetricsAddrFallback(t *testing.T) {
	m := MetricsConfig{}
	t.Setenv("TERRAIN_METRICS_ADDR", ":7000")
	assert.Equal(t, ":7000", m.GetMetricsAddr())
	t.Setenv("TERRAIN_METRICS_ADDR", "")
	assert.Equal(t, ":2112", m.GetMetricsAddr())
}

func TestApplyLogging(t *testing.T) {
	var buf bytes.Buffer
	logging.SetDefaultLogger(logging.NewWriterLogger("test", &buf, logging.INFO))
	defer logging.SetDefaultLogger(nil)

	cfg, err := Parse([]byte("logging:\n  level: warn\n  components:\n    square: trace\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.ApplyLogging())

	logging.Info("скрыто")
	logging.GetSquareLogger().Trace("видно")
	assert.Equal(t, "[TRACE][square] видно\n", buf.String())

	cfg.Logging.Components = map[string]string{"storage": "громко"}
	assert.Error(t, cfg.ApplyLogging())
	cfg.Logging.Level = "громко"
	assert.Error(t, cfg.ApplyLogging())
}

func TestParse_NaNWeightRejected(t *testing.T) {
	cfg, err := Parse([]byte(`
factories:
  broken:
    squares:
      - {id: FLOOR, weight: 1}
      - {id: HILL, weight: .nan}
`))
	require.NoError(t, err)

	_, err = cfg.BuildFactories()
	assert.Error(t, err)
}
