package domain

import (
	"context"

	"github.com/kasuganosora/tracerec/pkg/record"
)

// SourceType 事件源类型
type SourceType string

// String 返回事件源类型的字符串表示
func (t SourceType) String() string {
	return string(t)
}

const (
	// SourceTypeCSV CSV文件事件源
	SourceTypeCSV SourceType = "csv"
	// SourceTypeMySQL MySQL事件源
	SourceTypeMySQL SourceType = "mysql"
	// SourceTypePostgreSQL PostgreSQL事件源
	SourceTypePostgreSQL SourceType = "postgresql"
	// SourceTypeSQLite SQLite事件源
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeBadger Badger事件归档源
	SourceTypeBadger SourceType = "badger"
)

// SourceConfig 事件源配置
type SourceConfig struct {
	Type    SourceType             `json:"type"`
	Name    string                 `json:"name"`
	Path    string                 `json:"path,omitempty"`
	DSN     string                 `json:"dsn,omitempty"`
	Table   string                 `json:"table,omitempty"`
	Columns []string               `json:"columns"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// LoadResult 一次加载的结果
// BatchID identifies the load for downstream bookkeeping; every Load call
// yields a fresh one.
type LoadResult struct {
	BatchID string          `json:"batch_id"`
	Source  string          `json:"source"`
	Records *record.Records `json:"-"`
}

// EventSource 事件源
// Connect prepares the source; Load materializes the time-stamped event rows
// into a Records. Sources are read-only: the analysis engine never writes
// back.
type EventSource interface {
	Connect(ctx context.Context) error
	Load(ctx context.Context) (*LoadResult, error)
	Close() error
}
