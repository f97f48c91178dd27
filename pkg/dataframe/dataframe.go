package dataframe

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Cell 表格单元格
// Valid 为 false 表示该行缺失此列（导出为空单元格）。
type Cell struct {
	Value int64
	Valid bool
}

// DataFrame 行列对齐的表格数据
type DataFrame struct {
	Columns []string
	Rows    [][]Cell
}

// New 创建空表格
func New(columns []string) *DataFrame {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &DataFrame{Columns: cols}
}

// AppendRow adds one row. The cell count must match the column count.
func (df *DataFrame) AppendRow(cells []Cell) error {
	if len(cells) != len(df.Columns) {
		return fmt.Errorf("dataframe: row has %d cells, expected %d", len(cells), len(df.Columns))
	}
	row := make([]Cell, len(cells))
	copy(row, cells)
	df.Rows = append(df.Rows, row)
	return nil
}

// Len 返回行数
func (df *DataFrame) Len() int {
	return len(df.Rows)
}

// WriteCSV 导出为CSV
func (df *DataFrame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(df.Columns); err != nil {
		return fmt.Errorf("write csv header failed: %w", err)
	}
	fields := make([]string, len(df.Columns))
	for _, row := range df.Rows {
		for i, cell := range row {
			if cell.Valid {
				fields[i] = strconv.FormatInt(cell.Value, 10)
			} else {
				fields[i] = ""
			}
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("write csv row failed: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// String renders an aligned text table for debugging output.
func (df *DataFrame) String() string {
	widths := make([]int, len(df.Columns))
	for i, col := range df.Columns {
		widths[i] = len(col)
	}
	cells := make([][]string, len(df.Rows))
	for ri, row := range df.Rows {
		cells[ri] = make([]string, len(row))
		for ci, cell := range row {
			s := ""
			if cell.Valid {
				s = strconv.FormatInt(cell.Value, 10)
			}
			cells[ri][ci] = s
			if len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}

	var b strings.Builder
	for i, col := range df.Columns {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[i], col)
	}
	b.WriteString("\n")
	for _, row := range cells {
		for i, s := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], s)
		}
		b.WriteString("\n")
	}
	return b.String()
}
