package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"

	"affine"
	"affine/logging"
)

// ErrInvalid 配置取值非法
var ErrInvalid = errors.New("配置非法")

// Config 运行配置
type Config struct {
	Arith   ArithConfig  `yaml:"arith"`
	Reduce  ReduceConfig `yaml:"reduce"`
	Run     RunConfig    `yaml:"run"`
	Logging LogConfig    `yaml:"logging"`
}

// ArithConfig 仿射运算参数
type ArithConfig struct {
	Precision         uint   `yaml:"precision" split_words:"true"`
	InternalPrecision uint   `yaml:"internal_precision" split_words:"true"`
	RangeMethod       string `yaml:"range_method" split_words:"true"`
	MulMethod         string `yaml:"mul_method" split_words:"true"`
}

// ReduceConfig 周期性合并小噪声项
type ReduceConfig struct {
	Every    int     `yaml:"every" split_words:"true"`
	Fraction float64 `yaml:"fraction" split_words:"true"`
}

// RunConfig 模拟参数
type RunConfig struct {
	Steps  int     `yaml:"steps" split_words:"true"`
	Step   float64 `yaml:"step" split_words:"true"`
	Method string  `yaml:"method" split_words:"true"`
	Out    string  `yaml:"out" split_words:"true"`
}

// LogConfig 日志参数
type LogConfig struct {
	Level       string `yaml:"level" split_words:"true"`
	Development bool   `yaml:"development" split_words:"true"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Arith: ArithConfig{
			Precision:         affine.DefaultPrecision,
			InternalPrecision: affine.DefaultInternalPrecision,
			RangeMethod:       affine.AffineOnly.String(),
			MulMethod:         affine.Tight.String(),
		},
		Reduce: ReduceConfig{
			Every:    50,
			Fraction: 0.3,
		},
		Run: RunConfig{
			Steps:  500,
			Step:   0.1,
			Method: "euler",
			Out:    "out",
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// Load 读取 YAML 配置文件（path 为空时只用默认值），再用环境变量覆盖，
// 变量名形如 AFFINE_ARITH_PRECISION、AFFINE_REDUCE_EVERY
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置 %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置 %s: %w", path, err)
		}
	}
	if err := envconfig.Process("AFFINE", cfg); err != nil {
		return nil, fmt.Errorf("环境变量: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	if c.Arith.Precision < 2 {
		return fmt.Errorf("%w: precision %d < 2", ErrInvalid, c.Arith.Precision)
	}
	if _, err := affine.ParseRangeMethod(c.Arith.RangeMethod); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := affine.ParseMulMethod(c.Arith.MulMethod); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Reduce.Every < 0 {
		return fmt.Errorf("%w: reduce.every %d < 0", ErrInvalid, c.Reduce.Every)
	}
	if !(c.Reduce.Fraction >= 0 && c.Reduce.Fraction < 1) {
		return fmt.Errorf("%w: reduce.fraction %v 不在 [0, 1) 内", ErrInvalid, c.Reduce.Fraction)
	}
	if c.Run.Steps <= 0 {
		return fmt.Errorf("%w: run.steps %d <= 0", ErrInvalid, c.Run.Steps)
	}
	if !(c.Run.Step > 0) {
		return fmt.Errorf("%w: run.step %v <= 0", ErrInvalid, c.Run.Step)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Options 转换为上下文选项，调用前应先 Validate
func (c *Config) Options() []affine.Option {
	rm, _ := affine.ParseRangeMethod(c.Arith.RangeMethod)
	mm, _ := affine.ParseMulMethod(c.Arith.MulMethod)
	return []affine.Option{
		affine.WithPrecision(c.Arith.Precision),
		affine.WithInternalPrecision(c.Arith.InternalPrecision),
		affine.WithRangeMethod(rm),
		affine.WithMulMethod(mm),
	}
}

// Logger 按日志配置创建日志
func (c *Config) Logger() (*logging.Logger, error) {
	cfg := logging.DefaultConfig()
	if c.Logging.Development {
		cfg = logging.DevelopmentConfig()
	}
	cfg.Level = c.Logging.Level
	return logging.New(cfg)
}
