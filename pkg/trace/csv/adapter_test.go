package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/kasuganosora/tracerec/pkg/record"
	"github.com/kasuganosora/tracerec/pkg/trace/domain"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func makeRecords(rows ...map[string]int64) *record.Records {
	rs := record.NewRecords()
	for _, row := range rows {
		rs.Append(record.NewRecord(row))
	}
	return rs
}

func TestCSVAdapterLoad(t *testing.T) {
	path := writeFile(t, "events.csv", []byte("stamp,value\n1,10\n2,\n3,abc\n"))
	a := NewAdapter(&domain.SourceConfig{
		Type: domain.SourceTypeCSV,
		Name: "events",
		Path: path,
	})

	require.NoError(t, a.Connect(context.Background()))
	result, err := a.Load(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, "events", result.Source)
	// empty and non-integer cells become dropped data points
	assert.True(t, result.Records.Equals(makeRecords(
		map[string]int64{"stamp": 1, "value": 10},
		map[string]int64{"stamp": 2},
		map[string]int64{"stamp": 3},
	)))
}

func TestCSVAdapterColumnSelection(t *testing.T) {
	path := writeFile(t, "events.csv", []byte("stamp,value,junk\n1,10,7\n"))
	a := NewAdapter(&domain.SourceConfig{
		Type:    domain.SourceTypeCSV,
		Name:    "events",
		Path:    path,
		Columns: []string{"stamp", "value"},
	})

	require.NoError(t, a.Connect(context.Background()))
	result, err := a.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Records.Equals(makeRecords(
		map[string]int64{"stamp": 1, "value": 10},
	)))
}

func TestCSVAdapterNoHeader(t *testing.T) {
	path := writeFile(t, "events.csv", []byte("1;10\n2;20\n"))
	a := NewAdapter(&domain.SourceConfig{
		Type:    domain.SourceTypeCSV,
		Name:    "events",
		Path:    path,
		Columns: []string{"stamp", "value"},
		Options: map[string]interface{}{
			"header":    false,
			"delimiter": ";",
		},
	})

	require.NoError(t, a.Connect(context.Background()))
	result, err := a.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Records.Equals(makeRecords(
		map[string]int64{"stamp": 1, "value": 10},
		map[string]int64{"stamp": 2, "value": 20},
	)))
}

func TestCSVAdapterUTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("stamp\n42\n"))
	require.NoError(t, err)

	path := writeFile(t, "events.csv", data)
	a := NewAdapter(&domain.SourceConfig{
		Type:    domain.SourceTypeCSV,
		Name:    "events",
		Path:    path,
		Options: map[string]interface{}{"encoding": "utf-16le"},
	})

	require.NoError(t, a.Connect(context.Background()))
	result, err := a.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Records.Equals(makeRecords(
		map[string]int64{"stamp": 42},
	)))
}

func TestCSVAdapterUnknownEncoding(t *testing.T) {
	path := writeFile(t, "events.csv", []byte("stamp\n1\n"))
	a := NewAdapter(&domain.SourceConfig{
		Type:    domain.SourceTypeCSV,
		Name:    "events",
		Path:    path,
		Options: map[string]interface{}{"encoding": "ebcdic"},
	})

	err := a.Connect(context.Background())
	require.Error(t, err)
	var optErr *domain.ErrUnsupportedOption
	assert.ErrorAs(t, err, &optErr)
}

func TestCSVAdapterLoadBeforeConnect(t *testing.T) {
	a := NewAdapter(&domain.SourceConfig{Type: domain.SourceTypeCSV, Name: "events"})
	_, err := a.Load(context.Background())

	var notConnected *domain.ErrNotConnected
	assert.ErrorAs(t, err, &notConnected)
}

func TestCSVAdapterLoadReturnsCopies(t *testing.T) {
	path := writeFile(t, "events.csv", []byte("stamp\n1\n"))
	a := NewAdapter(&domain.SourceConfig{
		Type: domain.SourceTypeCSV,
		Name: "events",
		Path: path,
	})
	require.NoError(t, a.Connect(context.Background()))

	first, err := a.Load(context.Background())
	require.NoError(t, err)
	second, err := a.Load(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.BatchID, second.BatchID)
	first.Records.Data()[0].Add("stamp", 99)
	assert.True(t, second.Records.Equals(makeRecords(
		map[string]int64{"stamp": 1},
	)))
}
