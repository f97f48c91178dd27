package badgerstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/kasuganosora/tracerec/pkg/record"
	"github.com/kasuganosora/tracerec/pkg/trace/domain"
)

// Adapter Badger事件归档源适配器
// 采集端将事件写入Badger归档，键为 <table>/<seq>，值为列名到int64的JSON
// 对象。分析端以只读方式打开并按键顺序回放。
type Adapter struct {
	config *domain.SourceConfig
	db     *badger.DB
}

// NewAdapter 创建Badger事件归档源适配器
func NewAdapter(config *domain.SourceConfig) *Adapter {
	return &Adapter{config: config}
}

// Connect 打开归档
func (a *Adapter) Connect(ctx context.Context) error {
	opts := badger.DefaultOptions(a.config.Path).
		WithReadOnly(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("failed to open badger archive %q: %w", a.config.Path, err)
	}
	a.db = db
	return nil
}

// Load 按键顺序回放事件为记录集合
func (a *Adapter) Load(ctx context.Context) (*domain.LoadResult, error) {
	if a.db == nil {
		return nil, &domain.ErrNotConnected{SourceName: a.config.Name}
	}

	selected := make(map[string]bool, len(a.config.Columns))
	for _, c := range a.config.Columns {
		selected[c] = true
	}

	records := record.NewRecords()
	prefix := []byte(a.config.Table + "/")
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				var event map[string]int64
				if err := json.Unmarshal(val, &event); err != nil {
					return fmt.Errorf("failed to decode archived event %q: %w",
						string(it.Item().Key()), err)
				}
				rec := record.NewEmptyRecord()
				for column, v := range event {
					if len(selected) > 0 && !selected[column] {
						continue
					}
					rec.Add(column, v)
				}
				records.Append(rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.LoadResult{
		BatchID: uuid.NewString(),
		Source:  a.config.Name,
		Records: records,
	}, nil
}

// Close 关闭归档
func (a *Adapter) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
