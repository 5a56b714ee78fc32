package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr   string   `yaml:"listen_addr"`
	Port         string   `yaml:"port"`
	DatabasePath string   `yaml:"database_path"`
	GinMode      string   `yaml:"gin_mode"`
	Timezone     string   `yaml:"timezone"`
	LogMode      string   `yaml:"log_mode"`
	LogFile      string   `yaml:"log_file"`
	CORSOrigins  []string `yaml:"cors_origins"`
	HeatmapDays  int      `yaml:"heatmap_days"`
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 若设置了 CONFIG_FILE，先读取 YAML 文件，环境变量优先于文件。
func Load() (AppConfig, error) {
	var cfg AppConfig

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		cfg = fileCfg
	}

	cfg.Port = firstNonEmpty(os.Getenv("PORT"), cfg.Port, "8080")
	cfg.ListenAddr = firstNonEmpty(os.Getenv("LISTEN_ADDR"), cfg.ListenAddr, fmt.Sprintf(":%s", cfg.Port))
	cfg.DatabasePath = firstNonEmpty(os.Getenv("DATABASE_PATH"), cfg.DatabasePath, "habitledger.db")
	cfg.GinMode = firstNonEmpty(os.Getenv("GIN_MODE"), cfg.GinMode, "release")
	cfg.Timezone = firstNonEmpty(os.Getenv("TIMEZONE"), cfg.Timezone)
	cfg.LogMode = firstNonEmpty(os.Getenv("LOG_MODE"), cfg.LogMode, "production")
	cfg.LogFile = firstNonEmpty(os.Getenv("LOG_FILE"), cfg.LogFile)

	if origins := splitList(os.Getenv("CORS_ORIGINS")); len(origins) > 0 {
		cfg.CORSOrigins = origins
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:5173"}
	}

	if cfg.HeatmapDays <= 0 {
		cfg.HeatmapDays = 30
	}

	if _, err := cfg.Location(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

// LoadFile 解析 YAML 配置文件
func LoadFile(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Location 返回计算“日历日”所用的时区，未配置时使用本地时区
func (c AppConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
