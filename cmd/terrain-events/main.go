package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/annel0/rogue-terrain/internal/config"
	"github.com/annel0/rogue-terrain/internal/eventbus"
)

const timeFormat = "2006-01-02T15:04:05Z"

func main() {
	var (
		configPath = flag.String("config", "", "Путь к YAML конфигурации")
		url        = flag.String("url", "", "NATS URL (по умолчанию из конфигурации)")
		command    = flag.String("cmd", "tail", "Команда: tail, stats")
		eventTypes = flag.String("types", "", "Фильтр типов через запятую (square.* допустимо)")
		sources    = flag.String("sources", "", "Фильтр источников через запятую")
		limit      = flag.Int("limit", 100, "Сколько событий прочитать")
		timeout    = flag.Duration("wait", 5*time.Second, "Сколько ждать событий")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *url != "" {
		cfg.EventBus.URL = *url
	}
	if cfg.EventBus.URL == "" {
		log.Fatalf("❌ Не задан NATS URL (-url или eventbus.url)")
	}

	bus, err := eventbus.NewJetStreamBus(cfg.EventBus.URL, cfg.EventBus.Stream, time.Duration(cfg.EventBus.Retention)*time.Hour)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к JetStream: %v", err)
	}
	defer bus.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	filter := eventbus.Filter{
		Types:   parseStringList(*eventTypes),
		Sources: parseStringList(*sources),
	}

	var c consumer
	switch *command {
	case "tail":
		c = &tailer{out: os.Stdout}
	case "stats":
		c = newCounter()
	default:
		fmt.Printf("❌ Неизвестная команда: %s\n", *command)
		fmt.Println("Доступные команды: tail, stats")
		os.Exit(1)
	}

	wait, err := consume(ctx, bus, filter, *limit, c)
	if err != nil {
		log.Fatalf("❌ Ошибка подписки: %v", err)
	}
	c.finish(os.Stdout, wait())
}

// consumer обрабатывает события по одному; вызовы сериализованы
type consumer interface {
	handle(ev *eventbus.Envelope)
	finish(w io.Writer, total int)
}

// consume подписывается и возвращает ожидание: не более limit событий или до отмены ctx
func consume(ctx context.Context, bus eventbus.EventBus, f eventbus.Filter, limit int, c consumer) (func() int, error) {
	var (
		mu    sync.Mutex
		count int
	)
	ctx, cancel := context.WithCancel(ctx)

	sub, err := bus.Subscribe(ctx, f, func(_ context.Context, ev *eventbus.Envelope) {
		mu.Lock()
		defer mu.Unlock()
		if count >= limit {
			return
		}
		c.handle(ev)
		count++
		if count >= limit {
			cancel()
		}
	})
	if err != nil {
		cancel()
		return nil, err
	}

	return func() int {
		<-ctx.Done()
		sub.Unsubscribe()
		mu.Lock()
		defer mu.Unlock()
		return count
	}, nil
}

type tailer struct {
	out io.Writer
}

func (t *tailer) handle(ev *eventbus.Envelope) {
	fmt.Fprintf(t.out, "%s  %-24s %-8s %s\n", ev.Timestamp.UTC().Format(timeFormat), ev.EventType, ev.Source, ev.Payload)
}

func (t *tailer) finish(w io.Writer, total int) {
	fmt.Fprintf(w, "🎬 Прочитано событий: %d\n", total)
}

// counter считает события по типам
type counter struct {
	byType map[string]int
}

func newCounter() *counter {
	return &counter{byType: make(map[string]int)}
}

func (c *counter) handle(ev *eventbus.Envelope) {
	c.byType[ev.EventType]++
}

func (c *counter) finish(w io.Writer, total int) {
	types := make([]string, 0, len(c.byType))
	for t := range c.byType {
		types = append(types, t)
	}
	sort.Strings(types)

	fmt.Fprintf(w, "📊 Всего событий: %d\n", total)
	for _, t := range types {
		fmt.Fprintf(w, "   %-24s %d\n", t, c.byType[t])
	}
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
