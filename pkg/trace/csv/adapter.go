package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kasuganosora/tracerec/pkg/record"
	"github.com/kasuganosora/tracerec/pkg/trace/domain"
)

// Adapter CSV文件事件源适配器
// 只负责CSV格式的加载，行数据转换为记录集合。
type Adapter struct {
	config    *domain.SourceConfig
	filePath  string
	delimiter rune
	hasHeader bool
	encoding  string
	records   *record.Records
}

// NewAdapter 创建CSV事件源适配器
func NewAdapter(config *domain.SourceConfig) *Adapter {
	delimiter := ','
	hasHeader := true
	enc := ""

	// 从配置中读取选项
	if config.Options != nil {
		if d, ok := config.Options["delimiter"]; ok {
			if str, ok := d.(string); ok && len(str) > 0 {
				delimiter = rune(str[0])
			}
		}
		if h, ok := config.Options["header"]; ok {
			if b, ok := h.(bool); ok {
				hasHeader = b
			}
		}
		if e, ok := config.Options["encoding"]; ok {
			if str, ok := e.(string); ok {
				enc = str
			}
		}
	}

	return &Adapter{
		config:    config,
		filePath:  config.Path,
		delimiter: delimiter,
		hasHeader: hasHeader,
		encoding:  enc,
	}
}

// Connect 连接事件源 - 加载CSV文件到内存
func (a *Adapter) Connect(ctx context.Context) error {
	file, err := os.Open(a.filePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file %q: %w", a.filePath, err)
	}
	defer file.Close()

	decoded, err := decodeReader(file, a.encoding)
	if err != nil {
		return err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = a.delimiter
	reader.FieldsPerRecord = -1

	var header []string
	if a.hasHeader {
		header, err = reader.Read()
		if err == io.EOF {
			a.records = record.NewRecords()
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV header: %w", err)
		}
	} else {
		// 无表头时使用配置列名按位置对应
		header = a.config.Columns
	}

	selected := a.selectedColumns(header)

	records := record.NewRecords()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV row: %w", err)
		}
		records.Append(convertRow(header, selected, row))
	}

	a.records = records
	return nil
}

// Load 返回加载的记录集合副本
func (a *Adapter) Load(ctx context.Context) (*domain.LoadResult, error) {
	if a.records == nil {
		return nil, &domain.ErrNotConnected{SourceName: a.config.Name}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &domain.LoadResult{
		BatchID: uuid.NewString(),
		Source:  a.config.Name,
		Records: a.records.Clone().(*record.Records),
	}, nil
}

// Close 关闭事件源
func (a *Adapter) Close() error {
	a.records = nil
	return nil
}

// selectedColumns resolves which header columns to keep. An empty Columns
// config selects every header column.
func (a *Adapter) selectedColumns(header []string) map[string]bool {
	selected := make(map[string]bool, len(header))
	if len(a.config.Columns) == 0 {
		for _, h := range header {
			selected[h] = true
		}
		return selected
	}
	for _, c := range a.config.Columns {
		selected[c] = true
	}
	return selected
}

// convertRow parses the selected cells as int64 stamps. Empty or non-integer
// cells leave the column absent for the row: the engine treats those as
// dropped data points.
func convertRow(header []string, selected map[string]bool, row []string) *record.Record {
	rec := record.NewEmptyRecord()
	for i, cell := range row {
		if i >= len(header) || !selected[header[i]] {
			continue
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		v, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			continue
		}
		rec.Add(header[i], v)
	}
	return rec
}

// decodeReader 按配置的字符编码包装读取器
func decodeReader(r io.Reader, enc string) (io.Reader, error) {
	switch strings.ToLower(enc) {
	case "", "utf-8", "utf8":
		return r, nil
	case "utf-16le":
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(r, dec), nil
	case "utf-16be":
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(r, dec), nil
	default:
		return nil, &domain.ErrUnsupportedOption{Option: "encoding", Value: enc}
	}
}
