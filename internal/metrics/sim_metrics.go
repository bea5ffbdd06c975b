package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/voxelsim/internal/world"
)

// Метки очередей мира
const (
	QueueRebuild = "rebuild"
	QueueTick    = "tick"
	QueueWater   = "water"
)

// SimMetrics регистрирует метрики шагов симуляции в собственном регистре.
// Реализует world.Observer; нулевой указатель игнорирует вызовы.
//
// Метрики:
// * <ns>_steps_total - counter
// * <ns>_step_duration_seconds - histogram
// * <ns>_queue_work_total{queue} - обработанные записи очередей
// * <ns>_queue_length{queue} - длина очередей после шага
// * <ns>_chunks_generated_total, <ns>_growth_transitions_total, <ns>_mutations_total
// * <ns>_chunks, <ns>_active_chunks - gauge
type SimMetrics struct {
	registry *prometheus.Registry

	steps        prometheus.Counter
	stepDuration prometheus.Histogram
	queueWork    *prometheus.CounterVec
	queueLength  *prometheus.GaugeVec
	generated    prometheus.Counter
	transitions  prometheus.Counter
	mutations    prometheus.Counter
	chunks       prometheus.Gauge
	activeChunks prometheus.Gauge
}

var _ world.Observer = (*SimMetrics)(nil)

// NewSimMetrics создаёт метрики с пространством имён namespace.
// Регистр также содержит стандартные метрики Go и процесса.
func NewSimMetrics(namespace string) *SimMetrics {
	sm := &SimMetrics{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Общее число выполненных шагов симуляции.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Длительность шага симуляции.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		queueWork: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_work_total",
			Help:      "Записи очередей, обработанные в пределах бюджета.",
		}, []string{"queue"}),
		queueLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_length",
			Help:      "Длина очередей после шага.",
		}, []string{"queue"}),
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_generated_total",
			Help:      "Сгенерированные чанки.",
		}),
		transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "growth_transitions_total",
			Help:      "Выполненные переходы роста (саженцы, пшеница).",
		}),
		mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Изменения блоков, прошедшие через конвейер мутаций.",
		}),
		chunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks",
			Help:      "Чанки в памяти.",
		}),
		activeChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_chunks",
			Help:      "Чанки в активной окрестности.",
		}),
	}

	sm.registry.MustRegister(
		sm.steps, sm.stepDuration, sm.queueWork, sm.queueLength,
		sm.generated, sm.transitions, sm.mutations, sm.chunks, sm.activeChunks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return sm
}

// StepCompleted переносит итоги шага в метрики
func (sm *SimMetrics) StepCompleted(s world.StepStats) {
	if sm == nil {
		return
	}
	sm.steps.Inc()
	sm.stepDuration.Observe(s.Duration.Seconds())

	sm.queueWork.WithLabelValues(QueueRebuild).Add(float64(s.Rebuilt))
	sm.queueWork.WithLabelValues(QueueTick).Add(float64(s.TickAdvanced))
	sm.queueWork.WithLabelValues(QueueWater).Add(float64(s.WaterEvaluated))

	sm.queueLength.WithLabelValues(QueueRebuild).Set(float64(s.BuildQueue))
	sm.queueLength.WithLabelValues(QueueTick).Set(float64(s.TickEntries))
	sm.queueLength.WithLabelValues(QueueWater).Set(float64(s.WaterQueue))

	sm.generated.Add(float64(s.Generated))
	sm.transitions.Add(float64(s.Transitions))
	sm.mutations.Add(float64(s.Mutations))
	sm.chunks.Set(float64(s.Chunks))
	sm.activeChunks.Set(float64(s.ActiveChunks))
}

// Registerer позволяет другим компонентам регистрировать метрики рядом
func (sm *SimMetrics) Registerer() prometheus.Registerer {
	return sm.registry
}

// Gatherer возвращает регистр для экспорта
func (sm *SimMetrics) Gatherer() prometheus.Gatherer {
	return sm.registry
}

// Handler возвращает HTTP-обработчик /metrics для этого регистра
func (sm *SimMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(sm.registry, promhttp.HandlerOpts{Registry: sm.registry})
}
