package level

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/annel0/rogue-terrain/internal/eventbus"
	"github.com/annel0/rogue-terrain/internal/logging"
	"github.com/annel0/rogue-terrain/internal/observability"
	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/annel0/rogue-terrain/internal/util"
	"github.com/annel0/rogue-terrain/internal/vec"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Band полоса высот: клетки с высотой < Max берутся из Factory
type Band struct {
	Name    string
	Max     float64
	Factory *square.Factory
}

// Generator заполняет уровень по карте высот из шума Перлина.
// Полосы перебираются по возрастанию Max; последняя полоса ловит всё остальное.
type Generator struct {
	Width      int
	Height     int
	Seed       int64
	NoiseScale float64
	Bands      []Band
	Border     *square.Factory
	// Bridges ставит мост на каждую N-ю клетку опасной полосы по оси X (0 отключает мосты)
	Bridges int
}

// NewGenerator создаёт генератор с полосами по умолчанию:
// глубокая вода, мелководье, суша, холмы и магма, стены по краю.
func NewGenerator(width, height int, seed int64) *Generator {
	return &Generator{
		Width:      width,
		Height:     height,
		Seed:       seed,
		NoiseScale: 0.08,
		Bands: []Band{
			{Name: "deep", Max: 0.30, Factory: square.Single(square.NewSquareType(square.Water))},
			{Name: "shallow", Max: 0.40, Factory: square.NewFactory(
				[]square.SquareType{square.WithDepth(0.5), square.WithDepth(1.0), square.NewSquareType(square.Mud)},
				[]float64{3, 2, 1})},
			{Name: "land", Max: 0.65, Factory: square.NewFactory(
				[]square.SquareType{square.NewSquareType(square.Floor), square.NewSquareType(square.Grass), square.NewSquareType(square.Sand)},
				[]float64{2, 5, 1})},
			{Name: "high", Max: 0.80, Factory: square.NewFactory(
				[]square.SquareType{square.NewSquareType(square.Hill), square.NewSquareType(square.BlackWall)},
				[]float64{4, 1})},
			{Name: "volcanic", Max: 1.01, Factory: square.NewFactory(
				[]square.SquareType{square.NewSquareType(square.Magma), square.NewSquareType(square.Hill)},
				[]float64{3, 1})},
		},
		Border: square.Single(square.NewSquareType(square.BorderGuard)),
	}
}

// Validate проверяет настройки генератора
func (g *Generator) Validate() error {
	if g.Width <= 2 || g.Height <= 2 {
		return fmt.Errorf("слишком маленький уровень %dx%d", g.Width, g.Height)
	}
	if len(g.Bands) == 0 {
		return errors.New("нет ни одной полосы высот")
	}
	prev := -1.0
	for _, b := range g.Bands {
		if b.Factory == nil {
			return fmt.Errorf("полоса %q без фабрики", b.Name)
		}
		if b.Max <= prev {
			return fmt.Errorf("полосы должны идти по возрастанию: %q", b.Name)
		}
		prev = b.Max
	}
	if g.Border == nil {
		return errors.New("не задана фабрика границы")
	}
	return nil
}

func (g *Generator) bandFor(height float64) *Band {
	for i := range g.Bands {
		if height < g.Bands[i].Max {
			return &g.Bands[i]
		}
	}
	return &g.Bands[len(g.Bands)-1]
}

// Generate строит новый уровень. rng задаёт выбор внутри фабрик; карта высот зависит только от Seed.
func (g *Generator) Generate(ctx context.Context, rng *rand.Rand) (*Level, error) {
	ctx, span := observability.Tracer("level").Start(ctx, "level.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("level.width", g.Width),
		attribute.Int("level.height", g.Height),
		attribute.Int64("level.seed", g.Seed),
	)

	if err := g.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	noise := util.NewNoise(g.Seed)
	lvl := New(g.Width, g.Height)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v := vec.Vec2{X: x, Y: y}

			if x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1 {
				_ = lvl.Set(v, g.Border.Get(rng))
				continue
			}

			height := noise.Noise2D(float64(x)*g.NoiseScale, float64(y)*g.NoiseScale)
			s := g.bandFor(height).Factory.Get(rng)
			_ = lvl.Set(v, s)

			if g.Bridges > 0 && s.IsHazard() && x%g.Bridges == 0 {
				_ = lvl.AddFurniture(v, "bridge")
			}
		}
	}

	counts := lvl.Count()
	for id, n := range counts {
		span.SetAttributes(attribute.Int("squares."+id.String(), n))
	}
	logging.GetGenerationLogger().Info("🗺️ Уровень %dx%d сгенерирован (seed=%d): %v", g.Width, g.Height, g.Seed, counts)

	summary := make(map[string]int, len(counts))
	for id, n := range counts {
		summary[id.String()] = n
	}
	if err := eventbus.Emit(ctx, "level", eventbus.EventLevelGenerated, 3, summary); err != nil {
		logging.GetGenerationLogger().Warn("Не удалось опубликовать событие генерации: %v", err)
	}

	return lvl, nil
}
