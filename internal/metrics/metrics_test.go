package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelsim/internal/config"
	"github.com/annel0/voxelsim/internal/vec"
	"github.com/annel0/voxelsim/internal/world"
)

func TestSimMetricsStepCompleted(t *testing.T) {
	sm := NewSimMetrics("voxelsim")

	sm.StepCompleted(world.StepStats{
		Step:           1,
		Duration:       2 * time.Millisecond,
		Generated:      9,
		Rebuilt:        2,
		TickAdvanced:   40,
		Transitions:    1,
		WaterEvaluated: 3,
		Mutations:      5,
		Chunks:         9,
		ActiveChunks:   9,
		BuildQueue:     7,
		TickEntries:    120,
		WaterQueue:     4,
	})
	sm.StepCompleted(world.StepStats{Step: 2, Rebuilt: 2, Chunks: 9, ActiveChunks: 9, BuildQueue: 5})

	assert.Equal(t, 2.0, testutil.ToFloat64(sm.steps))
	assert.Equal(t, 4.0, testutil.ToFloat64(sm.queueWork.WithLabelValues(QueueRebuild)))
	assert.Equal(t, 40.0, testutil.ToFloat64(sm.queueWork.WithLabelValues(QueueTick)))
	assert.Equal(t, 3.0, testutil.ToFloat64(sm.queueWork.WithLabelValues(QueueWater)))
	assert.Equal(t, 5.0, testutil.ToFloat64(sm.queueLength.WithLabelValues(QueueRebuild)), "gauge хранит последнее значение")
	assert.Zero(t, testutil.ToFloat64(sm.queueLength.WithLabelValues(QueueWater)))
	assert.Equal(t, 9.0, testutil.ToFloat64(sm.generated))
	assert.Equal(t, 1.0, testutil.ToFloat64(sm.transitions))
	assert.Equal(t, 5.0, testutil.ToFloat64(sm.mutations))
	assert.Equal(t, 9.0, testutil.ToFloat64(sm.activeChunks))
}

func TestSimMetricsNilSafe(t *testing.T) {
	var sm *SimMetrics
	assert.NotPanics(t, func() { sm.StepCompleted(world.StepStats{Step: 1}) })
}

func TestSimMetricsAsWorldObserver(t *testing.T) {
	sm := NewSimMetrics("voxelsim")
	cfg := config.Default().World
	cfg.RenderDistance = 1
	w := world.NewWorld(cfg, world.Options{Observer: sm})

	w.UpdateStreaming(vec.Vec2{})
	for i := 0; i < 3; i++ {
		w.Step()
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(sm.steps))
	assert.Equal(t, 9.0, testutil.ToFloat64(sm.generated))
	assert.Equal(t, float64(3*cfg.RebuildBudget), testutil.ToFloat64(sm.queueWork.WithLabelValues(QueueRebuild)))
}

func TestSimMetricsHandler(t *testing.T) {
	sm := NewSimMetrics("voxelsim")
	sm.StepCompleted(world.StepStats{Step: 1})

	srv := httptest.NewServer(sm.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "voxelsim_steps_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestProcessSampler(t *testing.T) {
	reg := prometheus.NewRegistry()
	ps, err := NewProcessSampler("voxelsim", reg)
	require.NoError(t, err)

	s, err := ps.Sample()
	require.NoError(t, err)
	assert.Positive(t, s.RSSMB, "процесс занимает память")
	assert.Positive(t, s.Goroutines)
	assert.GreaterOrEqual(t, s.CPUPercent, 0.0)
	assert.Equal(t, s.RSSMB, testutil.ToFloat64(ps.rss))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{5 * time.Second, "5с"},
		{3*time.Minute + 2*time.Second, "3м 2с"},
		{2*time.Hour + time.Minute, "2ч 1м 0с"},
		{50*time.Hour + 30*time.Second, "2д 2ч 0м 30с"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatUptime(c.in))
	}
}
