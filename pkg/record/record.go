package record

import (
	"fmt"

	"github.com/kasuganosora/tracerec/pkg/utils"
)

// Record 单行跟踪记录，列名到int64值的映射
// The column set is always exactly the key set of the value map, so the two
// cannot drift apart across mutations.
type Record struct {
	values map[string]int64
}

// NewRecord 创建记录
func NewRecord(values map[string]int64) *Record {
	return &Record{values: utils.CopyInt64Map(values)}
}

// NewEmptyRecord 创建空记录
func NewEmptyRecord() *Record {
	return &Record{values: make(map[string]int64)}
}

// Get returns the value of a column. The column must be present; asking for an
// absent column is a caller bug, not a data condition.
func (r *Record) Get(column string) int64 {
	v, ok := r.values[column]
	if !ok {
		panic(fmt.Sprintf("record: column %q is not present", column))
	}
	return v
}

// Lookup returns the value of a column and whether it is present.
func (r *Record) Lookup(column string) (int64, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Has reports whether a column is present.
func (r *Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Add 添加或覆盖列值
func (r *Record) Add(column string, value int64) {
	r.values[column] = value
}

// DropColumns removes the listed columns. Absent columns are skipped.
func (r *Record) DropColumns(columns []string) {
	for _, column := range columns {
		delete(r.values, column)
	}
}

// RenameColumn moves the value of old to new. No-op when old is absent.
func (r *Record) RenameColumn(old, new string) {
	v, ok := r.values[old]
	if !ok {
		return
	}
	delete(r.values, old)
	r.values[new] = v
}

// Merge unions other's columns into the receiver. On collision other wins.
func (r *Record) Merge(other *Record) {
	for k, v := range other.values {
		r.values[k] = v
	}
}

// Equals 比较两条记录的列集合与对应值
func (r *Record) Equals(other *Record) bool {
	if len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		ov, ok := other.values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Data returns a copy of the column-value map.
func (r *Record) Data() map[string]int64 {
	return utils.CopyInt64Map(r.values)
}

// Columns returns the set of present column names.
func (r *Record) Columns() map[string]struct{} {
	result := make(map[string]struct{}, len(r.values))
	for k := range r.values {
		result[k] = struct{}{}
	}
	return result
}

// ColumnCount 返回列数
func (r *Record) ColumnCount() int {
	return len(r.values)
}

// Clone 深拷贝
func (r *Record) Clone() *Record {
	return &Record{values: utils.CopyInt64Map(r.values)}
}
