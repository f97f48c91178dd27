package response

import (
	"fmt"
	"sort"

	"github.com/kasuganosora/tracerec/pkg/record"
	"github.com/kasuganosora/tracerec/pkg/utils"
)

// ResponseTimeColumn 响应时间输出列名
const ResponseTimeColumn = "response_time"

// ResponseTime 端到端响应时间计算
// The stage chain order is fixed by the columns argument; only the first and
// last stages participate, intermediate stamps are ignored.
type ResponseTime struct {
	records     record.RecordsInterface
	startColumn string
	endColumn   string
}

// NewResponseTime 创建响应时间计算器
func NewResponseTime(records record.RecordsInterface, columns []string) *ResponseTime {
	if len(columns) < 2 {
		panic(fmt.Sprintf("response: need at least two stage columns, got %d", len(columns)))
	}
	return &ResponseTime{
		records:     records,
		startColumn: columns[0],
		endColumn:   columns[len(columns)-1],
	}
}

type responsePair struct {
	start int64
	value int64
}

// pairs walks the rows in reverse order carrying the last observed end stamp,
// so a row whose end stage was dropped inherits the end of the next completed
// chain, the same shape BindDropAsDelay would produce. Rows before any end
// stamp or without a start stamp yield nothing.
func (r *ResponseTime) pairs() []responsePair {
	rows := make([]*record.Record, len(r.records.Data()))
	copy(rows, r.records.Data())
	utils.ReverseSlice(rows)

	var result []responsePair
	var end int64
	haveEnd := false
	for _, row := range rows {
		if v, ok := row.Lookup(r.endColumn); ok {
			end = v
			haveEnd = true
		}
		if !haveEnd {
			continue
		}
		start, ok := row.Lookup(r.startColumn)
		if !ok {
			continue
		}
		result = append(result, responsePair{start: start, value: end - start})
	}
	return result
}

// aggregate keeps one response time per distinct start stamp and emits rows
// ordered by start ascending.
func (r *ResponseTime) aggregate(pick func(old, next int64) int64) record.RecordsInterface {
	byStart := make(map[int64]int64)
	for _, p := range r.pairs() {
		if old, seen := byStart[p.start]; seen {
			byStart[p.start] = pick(old, p.value)
		} else {
			byStart[p.start] = p.value
		}
	}

	starts := make([]int64, 0, len(byStart))
	for start := range byStart {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	out := record.NewRecords()
	for _, start := range starts {
		out.Append(record.NewRecord(map[string]int64{
			r.startColumn:      start,
			ResponseTimeColumn: byStart[start],
		}))
	}
	return out
}

// AllCaseRecords returns one row per start stamp covering a completed chain.
// Within a cohort sharing the start stamp only the earliest end survives, so
// the row reports the first time the chain completed.
func (r *ResponseTime) AllCaseRecords() record.RecordsInterface {
	return r.aggregate(func(old, next int64) int64 { return min(old, next) })
}

// BestCaseRecords returns the minimum response time per start stamp.
func (r *ResponseTime) BestCaseRecords() record.RecordsInterface {
	return r.aggregate(func(old, next int64) int64 { return min(old, next) })
}

// WorstCaseRecords returns the maximum response time per start stamp.
func (r *ResponseTime) WorstCaseRecords() record.RecordsInterface {
	return r.aggregate(func(old, next int64) int64 { return max(old, next) })
}
