package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	// 注册事件源使用的数据库驱动
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/kasuganosora/tracerec/pkg/record"
	"github.com/kasuganosora/tracerec/pkg/trace/domain"
)

// Adapter 关系型数据库事件源适配器
// 通过 database/sql 从事件表读取选定的int64列。
type Adapter struct {
	config *domain.SourceConfig
	driver string
	db     *sql.DB
}

// NewAdapter 创建数据库事件源适配器
func NewAdapter(config *domain.SourceConfig) (*Adapter, error) {
	driver, err := driverName(config.Type)
	if err != nil {
		return nil, err
	}
	return &Adapter{config: config, driver: driver}, nil
}

// driverName 事件源类型到驱动名的映射
func driverName(t domain.SourceType) (string, error) {
	switch t {
	case domain.SourceTypeMySQL:
		return "mysql", nil
	case domain.SourceTypePostgreSQL:
		return "postgres", nil
	case domain.SourceTypeSQLite:
		return "sqlite", nil
	default:
		return "", &domain.ErrUnsupportedSource{SourceType: t.String()}
	}
}

// Connect 连接数据库
func (a *Adapter) Connect(ctx context.Context) error {
	db, err := sql.Open(a.driver, a.config.DSN)
	if err != nil {
		return fmt.Errorf("failed to open %s event source: %w", a.driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping %s event source: %w", a.driver, err)
	}
	a.db = db
	return nil
}

// Load 读取事件表为记录集合
func (a *Adapter) Load(ctx context.Context) (*domain.LoadResult, error) {
	if a.db == nil {
		return nil, &domain.ErrNotConnected{SourceName: a.config.Name}
	}
	if len(a.config.Columns) == 0 {
		return nil, fmt.Errorf("event source %s: no columns configured", a.config.Name)
	}

	query := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(a.quoteIdentifiers(a.config.Columns), ", "),
		a.quoteIdentifier(a.config.Table))
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query event table %s: %w", a.config.Table, err)
	}
	defer rows.Close()

	records := record.NewRecords()
	values := make([]sql.NullInt64, len(a.config.Columns))
	dest := make([]interface{}, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		rec := record.NewEmptyRecord()
		for i, column := range a.config.Columns {
			// NULL单元格视为该行缺失此列
			if values[i].Valid {
				rec.Add(column, values[i].Int64)
			}
		}
		records.Append(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event rows: %w", err)
	}

	return &domain.LoadResult{
		BatchID: uuid.NewString(),
		Source:  a.config.Name,
		Records: records,
	}, nil
}

// Close 关闭数据库连接
func (a *Adapter) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// quoteIdentifier MySQL使用反引号，其余驱动使用双引号
func (a *Adapter) quoteIdentifier(name string) string {
	if a.driver == "mysql" {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (a *Adapter) quoteIdentifiers(names []string) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = a.quoteIdentifier(name)
	}
	return quoted
}
