package square

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	hazardDeaths = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terrain",
		Subsystem: "square",
		Name:      "hazard_deaths_total",
		Help:      "Существа, погибшие на опасных клетках.",
	}, []string{"square", "cause"})

	itemsDestroyed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terrain",
		Subsystem: "square",
		Name:      "items_destroyed_total",
		Help:      "Предметы, уничтоженные опасными клетками.",
	}, []string{"square"})

	factoryPicks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terrain",
		Subsystem: "factory",
		Name:      "picks_total",
		Help:      "Выбор типа клетки фабрикой: из очереди или взвешенно.",
	}, []string{"source", "square"})
)

// RegisterMetrics регистрирует метрики пакета. Повторная регистрация не ошибка.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{hazardDeaths, itemsDestroyed, factoryPicks} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}
