package record

import (
	"fmt"
	"reflect"

	"github.com/kasuganosora/tracerec/pkg/dataframe"
)

// How 连接的外连接策略
type How string

const (
	// HowInner keeps matched pairs only.
	HowInner How = "inner"
	// HowLeft keeps matched pairs and unmatched left rows.
	HowLeft How = "left"
	// HowRight keeps matched pairs and unmatched right rows.
	HowRight How = "right"
	// HowOuter keeps matched pairs and unmatched rows from both sides.
	HowOuter How = "outer"
)

func (h How) mergeLeft() bool {
	return h == HowLeft || h == HowOuter
}

func (h How) mergeRight() bool {
	return h == HowRight || h == HowOuter
}

func (h How) validate() {
	switch h {
	case HowInner, HowLeft, HowRight, HowOuter:
	default:
		panic(fmt.Sprintf("record: unknown merge how %q", string(h)))
	}
}

// RecordsInterface 记录集合的能力接口
// *Records is the in-process backend; alternative backends must provide the
// same operations. Merges never pair rows across different backends.
type RecordsInterface interface {
	Len() int
	Data() []*Record
	Columns() map[string]struct{}
	Append(r *Record)
	Clone() RecordsInterface
	Concat(other RecordsInterface, inplace bool) RecordsInterface
	Sort(key, subKey string, ascending, inplace bool) RecordsInterface
	FilterIf(pred func(*Record) bool, inplace bool) RecordsInterface
	DropColumns(columns []string, inplace bool) RecordsInterface
	RenameColumns(renames map[string]string, inplace bool) RecordsInterface
	Equals(other RecordsInterface) bool
	BindDropAsDelay(sortKey string)
	ToDataFrame() *dataframe.DataFrame

	Merge(right RecordsInterface, joinKey string, how How) RecordsInterface
	MergeSequential(right RecordsInterface, leftStampKey, rightStampKey, joinKey string, how How) RecordsInterface
	MergeSequentialForAddrTrack(
		sourceStampKey, sourceKey string,
		copyRecords RecordsInterface, copyStampKey, copyFromKey, copyToKey string,
		sinkRecords RecordsInterface, sinkStampKey, sinkFromKey string,
	) RecordsInterface
}

var _ RecordsInterface = (*Records)(nil)

// mustRecords asserts the in-process backend. Handing a merge a records
// collection of another kind is a caller bug.
func mustRecords(v RecordsInterface) *Records {
	r, ok := v.(*Records)
	if !ok {
		panic(fmt.Sprintf("record: mixed records implementations: %T", v))
	}
	return r
}

func assertSameKind(records ...RecordsInterface) {
	for i := 1; i < len(records); i++ {
		if reflect.TypeOf(records[i]) != reflect.TypeOf(records[0]) {
			panic(fmt.Sprintf("record: records implementations differ: %T vs %T",
				records[0], records[i]))
		}
	}
}

// Merge 按键等值连接，分发到左侧实现
func Merge(left, right RecordsInterface, joinKey string, how How) RecordsInterface {
	assertSameKind(left, right)
	return left.Merge(right, joinKey, how)
}

// MergeSequential 按时间顺序连接，分发到左侧实现
func MergeSequential(left, right RecordsInterface, leftStampKey, rightStampKey, joinKey string, how How) RecordsInterface {
	assertSameKind(left, right)
	return left.MergeSequential(right, leftStampKey, rightStampKey, joinKey, how)
}

// MergeSequentialForAddrTrack 地址跟踪连接，分发到source侧实现
func MergeSequentialForAddrTrack(
	sourceRecords RecordsInterface, sourceStampKey, sourceKey string,
	copyRecords RecordsInterface, copyStampKey, copyFromKey, copyToKey string,
	sinkRecords RecordsInterface, sinkStampKey, sinkFromKey string,
) RecordsInterface {
	assertSameKind(sourceRecords, copyRecords, sinkRecords)
	return sourceRecords.MergeSequentialForAddrTrack(
		sourceStampKey, sourceKey,
		copyRecords, copyStampKey, copyFromKey, copyToKey,
		sinkRecords, sinkStampKey, sinkFromKey,
	)
}
