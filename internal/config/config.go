package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации генератора местности.
type Config struct {
	Generator GeneratorConfig          `yaml:"generator"`
	Factories map[string]FactoryConfig `yaml:"factories"`
	Storage   StorageConfig            `yaml:"storage"`
	Metrics   MetricsConfig            `yaml:"metrics"`
	EventBus  EventBusConfig           `yaml:"eventbus"`
	Telemetry TelemetryConfig          `yaml:"telemetry"`
	Logging   LoggingConfig            `yaml:"logging"`
}

type GeneratorConfig struct {
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Seed       int64        `yaml:"seed"`
	NoiseScale float64      `yaml:"noise_scale"`
	Bridges    int          `yaml:"bridges"`
	Bands      []BandConfig `yaml:"bands"`
	Border     string       `yaml:"border"` // имя фабрики; по умолчанию BORDER_GUARD
}

// BandConfig полоса высот, ссылающаяся на именованную фабрику
type BandConfig struct {
	Name    string  `yaml:"name"`
	Max     float64 `yaml:"max"`
	Factory string  `yaml:"factory"`
}

// FactoryConfig таблица фабрики: очередь first и взвешенный список squares
type FactoryConfig struct {
	First   []TypeConfig     `yaml:"first"`
	Squares []WeightedConfig `yaml:"squares"`
}

// TypeConfig тип клетки; depth допустим только для WATER_WITH_DEPTH
type TypeConfig struct {
	ID    string   `yaml:"id"`
	Depth *float64 `yaml:"depth,omitempty"`
}

type WeightedConfig struct {
	TypeConfig `yaml:",inline"`
	Weight     float64 `yaml:"weight"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // пустой URL: in-memory шина
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Capacity  int    `yaml:"capacity"`
}

type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Service string `yaml:"service"`
}

// LoggingConfig уровни консоли: общий и по компонентам (square, generation, storage)
type LoggingConfig struct {
	Level      string            `yaml:"level"`
	Dir        string            `yaml:"dir"`
	Components map[string]string `yaml:"components"`
}

// Default конфигурация без файла: встроенные полосы генератора
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Width:      60,
			Height:     24,
			Seed:       1,
			NoiseScale: 0.08,
		},
		Factories: map[string]FactoryConfig{},
		Storage:   StorageConfig{Path: "data"},
		EventBus:  EventBusConfig{Stream: "TERRAIN", Retention: 24, Capacity: 256},
		Telemetry: TelemetryConfig{Service: "rogue-terrain"},
		Logging:   LoggingConfig{Level: "info", Dir: "logs"},
	}
}

// GetMetricsAddr возвращает адрес /metrics с приоритетом: config -> env -> default
func (m *MetricsConfig) GetMetricsAddr() string {
	if m.Addr != "" {
		return m.Addr
	}
	if envVal := os.Getenv("TERRAIN_METRICS_ADDR"); envVal != "" {
		return envVal
	}
	return ":2112"
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", пытается прочитать из ENV TERRAIN_CONFIG, иначе возвращает Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("TERRAIN_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}

	return Parse(data)
}

// Parse разбирает YAML поверх Default()
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	return cfg, nil
}
