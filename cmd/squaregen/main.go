package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/rogue-terrain/internal/config"
	"github.com/annel0/rogue-terrain/internal/eventbus"
	"github.com/annel0/rogue-terrain/internal/level"
	"github.com/annel0/rogue-terrain/internal/logging"
	"github.com/annel0/rogue-terrain/internal/observability"
	"github.com/annel0/rogue-terrain/internal/square"
	"github.com/annel0/rogue-terrain/internal/storage"
	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	var (
		configPath = flag.String("config", "", "Путь к YAML конфигурации (по умолчанию $TERRAIN_CONFIG)")
		seed       = flag.Int64("seed", 0, "Переопределить seed генератора")
		levelID    = flag.String("save", "", "Сохранить уровень под этим идентификатором")
		load       = flag.String("load", "", "Загрузить сохранённый уровень вместо генерации")
		tui        = flag.Bool("tui", false, "Показать уровень в терминале (tcell)")
		demo       = flag.Bool("demo", true, "Прогнать существ и предметы через опасные клетки")
		serve      = flag.Bool("serve", false, "Не завершаться: держать /metrics до сигнала")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}

	logging.LogDir = cfg.Logging.Dir
	if err := logging.InitDefaultLogger("squaregen"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	if err := cfg.ApplyLogging(); err != nil {
		log.Fatalf("❌ Ошибка настройки логирования: %v", err)
	}

	logging.Info("🌋 Запуск генератора местности (seed=%d, %dx%d)", cfg.Generator.Seed, cfg.Generator.Width, cfg.Generator.Height)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ТЕЛЕМЕТРИЯ ===
	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.Service)
		if err != nil {
			logging.Warn("⚠️ Трассировка отключена: %v", err)
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					logging.Error("Ошибка остановки трассировки: %v", err)
				}
			}()
		}
	}

	// === ШИНА СОБЫТИЙ И МЕТРИКИ ===
	bus := newBus(cfg.EventBus)
	eventbus.Init(bus)
	defer func() {
		if err := eventbus.Shutdown(); err != nil {
			logging.Error("Ошибка закрытия шины событий: %v", err)
		}
	}()
	if _, err := eventbus.StartLoggingListener(ctx, bus); err != nil {
		logging.Warn("Не удалось подписать логгер на события: %v", err)
	}

	reg := prometheus.NewRegistry()
	if err := square.RegisterMetrics(reg); err != nil {
		log.Fatalf("❌ Ошибка регистрации метрик: %v", err)
	}
	exporter, err := eventbus.NewMetricsExporter(bus, reg)
	if err != nil {
		log.Fatalf("❌ Ошибка регистрации метрик шины: %v", err)
	}
	if *serve {
		exporter.StartHTTP(cfg.Metrics.GetMetricsAddr())
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = exporter.Stop(sctx)
	}()

	// === ХРАНИЛИЩЕ ===
	var store *storage.LevelStorage
	if *levelID != "" || *load != "" {
		store, err = storage.NewLevelStorage(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("❌ Ошибка открытия хранилища: %v", err)
		}
		defer store.Close()
	}

	// === УРОВЕНЬ ===
	var lvl *level.Level
	if *load != "" {
		lvl, err = store.Load(ctx, *load)
		if err != nil {
			log.Fatalf("❌ Ошибка загрузки уровня %s: %v", *load, err)
		}
		logging.Info("📂 Уровень %s загружен", *load)
	} else {
		gen, err := cfg.BuildGenerator()
		if err != nil {
			log.Fatalf("❌ Ошибка сборки генератора: %v", err)
		}
		lvl, err = gen.Generate(ctx, rand.New(rand.NewSource(cfg.Generator.Seed)))
		if err != nil {
			log.Fatalf("❌ Ошибка генерации уровня: %v", err)
		}
	}

	if *demo {
		for _, line := range runHazardDemo(lvl) {
			logging.Info("   %s", line)
		}
	}

	if *levelID != "" {
		if err := store.Save(ctx, *levelID, lvl); err != nil {
			log.Fatalf("❌ Ошибка сохранения уровня: %v", err)
		}
		logging.Info("💾 Уровень сохранён как %s", *levelID)
	}

	if *tui {
		if err := showTUI(ctx, lvl); err != nil {
			logging.Error("❌ Ошибка терминала: %v", err)
		}
	} else {
		fmt.Print(lvl.String())
	}

	if *serve {
		logging.Info("📡 Ожидание сигнала завершения, /metrics на %s", cfg.Metrics.GetMetricsAddr())
		<-ctx.Done()
	}

	exporter.Sync()
	logging.Info("👋 Готово")
}

// newBus выбирает JetStream при заданном URL, иначе in-memory шину
func newBus(cfg config.EventBusConfig) eventbus.EventBus {
	if cfg.URL != "" {
		js, err := eventbus.NewJetStreamBus(cfg.URL, cfg.Stream, time.Duration(cfg.Retention)*time.Hour)
		if err == nil {
			logging.Info("📨 Шина событий: JetStream %s (stream %s)", cfg.URL, cfg.Stream)
			return js
		}
		logging.Warn("⚠️ JetStream недоступен (%v), используется in-memory шина", err)
	}
	return eventbus.NewMemoryBus(cfg.Capacity)
}

// showTUI рисует уровень и ждёт клавишу или сигнал
func showTUI(ctx context.Context, lvl *level.Level) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	lvl.Draw(screen)
	screen.Show()

	keys := make(chan struct{})
	go func() {
		for {
			switch screen.PollEvent().(type) {
			case *tcell.EventKey:
				close(keys)
				return
			case nil:
				return
			}
		}
	}()

	select {
	case <-keys:
	case <-ctx.Done():
	}
	return nil
}
