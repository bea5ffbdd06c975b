package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации симуляции.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Sim     SimConfig     `yaml:"sim"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// WorldConfig параметры генерации и бюджеты шага
type WorldConfig struct {
	Seed           int64 `yaml:"seed"`
	SeaLevel       int   `yaml:"sea_level"`
	RenderDistance int   `yaml:"render_distance"`

	RebuildBudget int `yaml:"rebuild_budget"`
	TickBudget    int `yaml:"tick_budget"`
	WaterBudget   int `yaml:"water_budget"`

	SaplingThreshold int `yaml:"sapling_threshold"`
	WheatThreshold   int `yaml:"wheat_threshold"`
}

// SimConfig параметры headless-прогона
type SimConfig struct {
	TickRate    int     `yaml:"tick_rate"`    // шагов в секунду
	WalkSpeed   float64 `yaml:"walk_speed"`   // блоков в секунду вдоль оси X
	StatsEvery  int     `yaml:"stats_every"`  // период вывода статистики (секунды)
	EventBuffer int     `yaml:"event_buffer"` // ёмкость in-memory шины
	MaxSteps    int     `yaml:"max_steps"`    // 0 - без ограничения
	SpawnX      float64 `yaml:"spawn_x"`
	SpawnZ      float64 `yaml:"spawn_z"`
}

// MetricsConfig Prometheus endpoint
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// LogConfig уровни логирования
type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:             1337,
			SeaLevel:         24,
			RenderDistance:   3,
			RebuildBudget:    2,
			TickBudget:       64,
			WaterBudget:      32,
			SaplingThreshold: 200,
			WheatThreshold:   150,
		},
		Sim: SimConfig{
			TickRate:    20,
			WalkSpeed:   4,
			StatsEvery:  10,
			EventBuffer: 256,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    2112,
		},
		Log: LogConfig{
			Level: "INFO",
			Dir:   "logs",
		},
	}
}

// GetSeed возвращает сид с приоритетом: config -> env -> default
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("VOXEL_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 1337
}

// GetPort возвращает порт метрик с поддержкой fallback значений
func (m *MetricsConfig) GetPort() int {
	return getPortWithEnvFallback(m.Port, "VOXEL_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	w := c.World
	if w.SeaLevel < 1 || w.SeaLevel >= 63 {
		return fmt.Errorf("sea_level %d вне диапазона высоты мира", w.SeaLevel)
	}
	if w.RenderDistance < 0 {
		return fmt.Errorf("render_distance не может быть отрицательным: %d", w.RenderDistance)
	}
	if w.RebuildBudget <= 0 || w.TickBudget <= 0 || w.WaterBudget <= 0 {
		return fmt.Errorf("бюджеты шага должны быть положительными: rebuild=%d tick=%d water=%d",
			w.RebuildBudget, w.TickBudget, w.WaterBudget)
	}
	if w.SaplingThreshold <= 0 || w.WheatThreshold <= 0 {
		return fmt.Errorf("пороги роста должны быть положительными: sapling=%d wheat=%d",
			w.SaplingThreshold, w.WheatThreshold)
	}
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("tick_rate должен быть положительным: %d", c.Sim.TickRate)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан, используем дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	return cfg, nil
}
