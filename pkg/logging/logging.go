// Package logging 构建全局使用的 zap 日志
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// Verbose 使用开发模式的彩色控制台输出，默认级别 debug
	Verbose bool
	// Level 日志级别（debug/info/warn/error），为空时按 Verbose 取默认值
	Level string
	// Format console 或 json，为空时 Verbose 用 console，否则用 json
	Format string
	// OutputPaths 输出位置，为空时写 stderr
	OutputPaths []string
}

// New 按配置创建日志
//
// 返回:
//   - *zap.Logger: 日志实例
//   - error: 级别无法解析或构建失败时返回错误
func New(cfg Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Verbose {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := parseLevel(cfg)
	if err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "":
	case "console", "json":
		zapConfig.Encoding = cfg.Format
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	if zapConfig.Encoding == "json" {
		zapConfig.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	}
	if len(cfg.OutputPaths) > 0 {
		zapConfig.OutputPaths = cfg.OutputPaths
	}

	logger, err := zapConfig.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func parseLevel(cfg Config) (zapcore.Level, error) {
	if cfg.Level == "" {
		if cfg.Verbose {
			return zapcore.DebugLevel, nil
		}
		return zapcore.WarnLevel, nil
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return level, nil
}
