package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kasuganosora/tracerec/pkg/trace/domain"
)

// Config 应用程序配置
type Config struct {
	Sources []domain.SourceConfig `json:"sources"`
	Export  ExportConfig          `json:"export"`
}

// ExportConfig 导出配置
type ExportConfig struct {
	Directory string `json:"directory"`
	Format    string `json:"format"` // csv or xlsx
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			Directory: ".",
			Format:    "csv",
		},
	}
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	// 如果没有指定配置文件，使用默认配置
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig 验证配置
func validateConfig(config *Config) error {
	switch config.Export.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("不支持的导出格式: %s", config.Export.Format)
	}

	seen := make(map[string]bool, len(config.Sources))
	for i := range config.Sources {
		src := &config.Sources[i]
		if src.Name == "" {
			return fmt.Errorf("事件源缺少名称")
		}
		if seen[src.Name] {
			return fmt.Errorf("事件源名称重复: %s", src.Name)
		}
		seen[src.Name] = true

		switch src.Type {
		case domain.SourceTypeCSV, domain.SourceTypeBadger:
			if src.Path == "" {
				return fmt.Errorf("事件源 %s 缺少路径", src.Name)
			}
		case domain.SourceTypeMySQL, domain.SourceTypePostgreSQL, domain.SourceTypeSQLite:
			if src.DSN == "" {
				return fmt.Errorf("事件源 %s 缺少DSN", src.Name)
			}
			if src.Table == "" {
				return fmt.Errorf("事件源 %s 缺少事件表名", src.Name)
			}
		default:
			return &domain.ErrUnsupportedSource{SourceType: src.Type.String()}
		}
	}
	return nil
}
