package trace

import (
	"github.com/kasuganosora/tracerec/pkg/trace/badgerstore"
	"github.com/kasuganosora/tracerec/pkg/trace/csv"
	"github.com/kasuganosora/tracerec/pkg/trace/domain"
	"github.com/kasuganosora/tracerec/pkg/trace/sqldb"
)

// NewEventSource 按配置类型创建事件源
func NewEventSource(config *domain.SourceConfig) (domain.EventSource, error) {
	switch config.Type {
	case domain.SourceTypeCSV:
		return csv.NewAdapter(config), nil
	case domain.SourceTypeMySQL, domain.SourceTypePostgreSQL, domain.SourceTypeSQLite:
		return sqldb.NewAdapter(config)
	case domain.SourceTypeBadger:
		return badgerstore.NewAdapter(config), nil
	default:
		return nil, &domain.ErrUnsupportedSource{SourceType: config.Type.String()}
	}
}
