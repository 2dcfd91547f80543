package config

import (
	"fmt"

	"github.com/annel0/rogue-terrain/internal/level"
	"github.com/annel0/rogue-terrain/internal/logging"
	"github.com/annel0/rogue-terrain/internal/square"
)

// SquareType переводит описание типа в square.SquareType
func (tc TypeConfig) SquareType() (square.SquareType, error) {
	id, err := square.ParseSquareID(tc.ID)
	if err != nil {
		return square.SquareType{}, err
	}
	if tc.Depth == nil {
		return square.NewSquareType(id), nil
	}
	if id != square.WaterWithDepth {
		return square.SquareType{}, fmt.Errorf("глубина задана для %s, допустима только для %s", id, square.WaterWithDepth)
	}
	return square.WithDepth(*tc.Depth), nil
}

// BuildFactory собирает фабрику из таблицы. В отличие от square.NewFactory
// ошибки конфигурации возвращаются, а не приводят к панике.
func BuildFactory(fc FactoryConfig) (*square.Factory, error) {
	if len(fc.Squares) == 0 {
		return nil, fmt.Errorf("фабрика без взвешенного списка squares")
	}

	first := make([]square.SquareType, 0, len(fc.First))
	for _, tc := range fc.First {
		t, err := tc.SquareType()
		if err != nil {
			return nil, err
		}
		first = append(first, t)
	}

	squares := make([]square.SquareType, 0, len(fc.Squares))
	weights := make([]float64, 0, len(fc.Squares))
	var total float64
	for _, wc := range fc.Squares {
		t, err := wc.SquareType()
		if err != nil {
			return nil, err
		}
		if !square.ValidWeight(wc.Weight) {
			return nil, fmt.Errorf("некорректный вес %g у %s: нужен конечный неотрицательный", wc.Weight, wc.ID)
		}
		squares = append(squares, t)
		weights = append(weights, wc.Weight)
		total += wc.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("сумма весов фабрики должна быть положительной")
	}

	return square.NewFactoryWithFirst(first, squares, weights), nil
}

// BuildFactories собирает все именованные фабрики
func (c *Config) BuildFactories() (map[string]*square.Factory, error) {
	factories := make(map[string]*square.Factory, len(c.Factories))
	for name, fc := range c.Factories {
		f, err := BuildFactory(fc)
		if err != nil {
			return nil, fmt.Errorf("фабрика %q: %w", name, err)
		}
		factories[name] = f
	}
	return factories, nil
}

// BuildGenerator создаёт генератор уровня. Без полос в конфигурации используются
// встроенные полосы level.NewGenerator.
func (c *Config) BuildGenerator() (*level.Generator, error) {
	g := level.NewGenerator(c.Generator.Width, c.Generator.Height, c.Generator.Seed)
	if c.Generator.NoiseScale > 0 {
		g.NoiseScale = c.Generator.NoiseScale
	}
	g.Bridges = c.Generator.Bridges

	if len(c.Generator.Bands) == 0 && c.Generator.Border == "" {
		return validated(g)
	}

	factories, err := c.BuildFactories()
	if err != nil {
		return nil, err
	}

	if len(c.Generator.Bands) > 0 {
		g.Bands = make([]level.Band, 0, len(c.Generator.Bands))
		for _, bc := range c.Generator.Bands {
			f, ok := factories[bc.Factory]
			if !ok {
				return nil, fmt.Errorf("полоса %q ссылается на неизвестную фабрику %q", bc.Name, bc.Factory)
			}
			g.Bands = append(g.Bands, level.Band{Name: bc.Name, Max: bc.Max, Factory: f})
		}
	}

	if c.Generator.Border != "" {
		f, ok := factories[c.Generator.Border]
		if !ok {
			return nil, fmt.Errorf("неизвестная фабрика границы %q", c.Generator.Border)
		}
		g.Border = f
	}

	return validated(g)
}

func validated(g *level.Generator) (*level.Generator, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("некорректный генератор: %w", err)
	}
	return g, nil
}

// ApplyLogging настраивает пороги глобального логгера и компонентов
func (c *Config) ApplyLogging() error {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return err
	}
	logging.DefaultLogger().SetConsoleLevel(level)

	for component, name := range c.Logging.Components {
		lvl, err := logging.ParseLevel(name)
		if err != nil {
			return fmt.Errorf("компонент %s: %w", component, err)
		}
		logging.GetLoggerManager().SetLogLevel(component, lvl)
	}
	return nil
}
