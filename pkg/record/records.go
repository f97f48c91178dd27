package record

import (
	"sort"

	"github.com/kasuganosora/tracerec/pkg/dataframe"
	"github.com/kasuganosora/tracerec/pkg/utils"
)

// Records 有序记录集合，带声明列集合
// The declared column set always covers every column present in any row; a
// declared column may be absent from individual rows (a dropped data point).
type Records struct {
	records []*Record
	columns map[string]struct{}
}

// NewRecords 创建记录集合
func NewRecords(records ...*Record) *Records {
	rs := &Records{columns: make(map[string]struct{})}
	for _, r := range records {
		rs.Append(r)
	}
	return rs
}

// Len 返回行数
func (rs *Records) Len() int {
	return len(rs.records)
}

// Data returns the live row slice, in order.
func (rs *Records) Data() []*Record {
	return rs.records
}

// Columns returns a copy of the declared column set.
func (rs *Records) Columns() map[string]struct{} {
	return utils.CopyStringSet(rs.columns)
}

// HasColumn reports whether a column is declared.
func (rs *Records) HasColumn(column string) bool {
	_, ok := rs.columns[column]
	return ok
}

// Append 追加一行，声明列并入该行的列
func (rs *Records) Append(r *Record) {
	rs.records = append(rs.records, r)
	for k := range r.values {
		rs.columns[k] = struct{}{}
	}
}

// Clone 深拷贝
func (rs *Records) Clone() RecordsInterface {
	return rs.clone()
}

func (rs *Records) clone() *Records {
	out := &Records{
		records: make([]*Record, len(rs.records)),
		columns: utils.CopyStringSet(rs.columns),
	}
	for i, r := range rs.records {
		out.records[i] = r.Clone()
	}
	return out
}

// Concat appends other's rows after the receiver's; declared columns become the
// union. Rows are copied, never aliased between the two collections.
func (rs *Records) Concat(other RecordsInterface, inplace bool) RecordsInterface {
	o := mustRecords(other)
	target := rs
	if !inplace {
		target = rs.clone()
	}
	for _, r := range o.records {
		target.Append(r.Clone())
	}
	if inplace {
		return nil
	}
	return target
}

// Sort orders rows by (Get(key), Get(subKey)); subKey may be empty. The sort is
// stable. Every row must carry the sort key.
func (rs *Records) Sort(key, subKey string, ascending, inplace bool) RecordsInterface {
	target := rs
	if !inplace {
		target = rs.clone()
	}
	sort.SliceStable(target.records, func(i, j int) bool {
		a, b := target.records[i], target.records[j]
		av, bv := a.Get(key), b.Get(key)
		if av == bv && subKey != "" {
			av, bv = a.Get(subKey), b.Get(subKey)
		}
		if ascending {
			return av < bv
		}
		return av > bv
	})
	if inplace {
		return nil
	}
	return target
}

// FilterIf retains the rows for which pred is true. The declared column set is
// preserved, not narrowed to the surviving rows.
func (rs *Records) FilterIf(pred func(*Record) bool, inplace bool) RecordsInterface {
	kept := make([]*Record, 0, len(rs.records))
	for _, r := range rs.records {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	if inplace {
		rs.records = kept
		return nil
	}
	out := &Records{
		records: make([]*Record, len(kept)),
		columns: utils.CopyStringSet(rs.columns),
	}
	for i, r := range kept {
		out.records[i] = r.Clone()
	}
	return out
}

// DropColumns removes the listed columns from the declared set and every row.
func (rs *Records) DropColumns(columns []string, inplace bool) RecordsInterface {
	target := rs
	if !inplace {
		target = rs.clone()
	}
	for _, column := range columns {
		delete(target.columns, column)
	}
	for _, r := range target.records {
		r.DropColumns(columns)
	}
	if inplace {
		return nil
	}
	return target
}

// RenameColumns renames declared columns and row columns atomically. A renamed
// column stays declared even when absent from every row.
func (rs *Records) RenameColumns(renames map[string]string, inplace bool) RecordsInterface {
	target := rs
	if !inplace {
		target = rs.clone()
	}
	for old := range renames {
		delete(target.columns, old)
	}
	for _, new := range renames {
		target.columns[new] = struct{}{}
	}
	for _, r := range target.records {
		for old, new := range renames {
			r.RenameColumn(old, new)
		}
	}
	if inplace {
		return nil
	}
	return target
}

// Equals 比较行数、逐行内容与声明列集合
func (rs *Records) Equals(other RecordsInterface) bool {
	o, ok := other.(*Records)
	if !ok {
		return false
	}
	if len(rs.records) != len(o.records) {
		return false
	}
	for i, r := range rs.records {
		if !r.Equals(o.records[i]) {
			return false
		}
	}
	if len(rs.columns) != len(o.columns) {
		return false
	}
	for k := range rs.columns {
		if _, ok := o.columns[k]; !ok {
			return false
		}
	}
	return true
}

// BindDropAsDelay fills dropped columns with the value most recently observed
// while walking rows in descending sortKey order, so a dropped data point
// manifests as the delay of the next recorded one. Re-sorts ascending when done.
func (rs *Records) BindDropAsDelay(sortKey string) {
	rs.Sort(sortKey, "", false, true)

	latest := make(map[string]int64)
	for _, r := range rs.records {
		for column := range rs.columns {
			if v, seen := latest[column]; seen && !r.Has(column) {
				r.Add(column, v)
			}
			if v, ok := r.Lookup(column); ok {
				latest[column] = v
			}
		}
	}

	rs.Sort(sortKey, "", true, true)
}

// ToDataFrame 导出为表格，声明列中行内缺失的值为空单元格
// Column order in the export is ascending by name.
func (rs *Records) ToDataFrame() *dataframe.DataFrame {
	union := utils.CopyStringSet(rs.columns)
	for _, r := range rs.records {
		for k := range r.values {
			union[k] = struct{}{}
		}
	}
	columns := utils.SortedStringKeys(union)

	df := dataframe.New(columns)
	cells := make([]dataframe.Cell, len(columns))
	for _, r := range rs.records {
		for i, column := range columns {
			v, ok := r.Lookup(column)
			cells[i] = dataframe.Cell{Value: v, Valid: ok}
		}
		// AppendRow only fails on a cell count mismatch, which cannot
		// happen here.
		_ = df.AppendRow(cells)
	}
	return df
}
