package metrics

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessSample снимок ресурсов процесса
type ProcessSample struct {
	Uptime     time.Duration
	CPUPercent float64
	RSSMB      float64
	HeapMB     float64
	Goroutines int
}

// ProcessSampler снимает показатели процесса через gopsutil
type ProcessSampler struct {
	StartTime time.Time

	proc    *process.Process
	cpu     prometheus.Gauge
	rss     prometheus.Gauge
	heap    prometheus.Gauge
	running prometheus.Gauge
}

// NewProcessSampler создаёт сэмплер текущего процесса и регистрирует его gauge в reg
func NewProcessSampler(namespace string, reg prometheus.Registerer) (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("открытие процесса: %w", err)
	}

	ps := &ProcessSampler{
		StartTime: time.Now(),
		proc:      proc,
		cpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "Загрузка CPU процессом в процентах.",
		}),
		rss: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_megabytes",
			Help:      "Резидентная память процесса, МБ.",
		}),
		heap: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_megabytes",
			Help:      "Занятая куча Go, МБ.",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Время работы процесса.",
		}),
	}
	reg.MustRegister(ps.cpu, ps.rss, ps.heap, ps.running)
	return ps, nil
}

// GetUptime возвращает время работы в читаемом виде
func (ps *ProcessSampler) GetUptime() string {
	return FormatUptime(time.Since(ps.StartTime))
}

// FormatUptime форматирует длительность как "1д 2ч 3м 4с"
func FormatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// GetCPUUsage возвращает загрузку CPU процессом в процентах.
// Если метрика процесса недоступна, возвращается системная.
func (ps *ProcessSampler) GetCPUUsage() (float64, error) {
	cpuPercent, err := ps.proc.CPUPercent()
	if err != nil {
		cpuPercents, err := cpu.Percent(100*time.Millisecond, false)
		if err != nil || len(cpuPercents) == 0 {
			return 0, err
		}
		return cpuPercents[0], nil
	}
	return cpuPercent, nil
}

// Sample снимает показатели и обновляет gauge
func (ps *ProcessSampler) Sample() (ProcessSample, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s := ProcessSample{
		Uptime:     time.Since(ps.StartTime),
		HeapMB:     float64(m.HeapAlloc) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
	}

	cpuPercent, err := ps.GetCPUUsage()
	if err != nil {
		return s, fmt.Errorf("загрузка CPU: %w", err)
	}
	s.CPUPercent = cpuPercent

	mem, err := ps.proc.MemoryInfo()
	if err != nil {
		return s, fmt.Errorf("память процесса: %w", err)
	}
	s.RSSMB = float64(mem.RSS) / 1024 / 1024

	ps.cpu.Set(s.CPUPercent)
	ps.rss.Set(s.RSSMB)
	ps.heap.Set(s.HeapMB)
	ps.running.Set(s.Uptime.Seconds())
	return s, nil
}
