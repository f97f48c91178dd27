package badgerstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuganosora/tracerec/pkg/record"
	"github.com/kasuganosora/tracerec/pkg/trace/domain"
)

func makeRecords(rows ...map[string]int64) *record.Records {
	rs := record.NewRecords()
	for _, row := range rows {
		rs.Append(record.NewRecord(row))
	}
	return rs
}

func writeArchive(t *testing.T, events []string) string {
	t.Helper()
	dir := t.TempDir()

	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	err = db.Update(func(txn *badger.Txn) error {
		for i, event := range events {
			key := fmt.Sprintf("events/%06d", i)
			if err := txn.Set([]byte(key), []byte(event)); err != nil {
				return err
			}
		}
		// an entry outside the table prefix must not be replayed
		return txn.Set([]byte("other/000000"), []byte(`{"stamp":99}`))
	})
	require.NoError(t, err)
	return dir
}

func TestBadgerAdapterLoad(t *testing.T) {
	dir := writeArchive(t, []string{
		`{"stamp":1,"value":10}`,
		`{"stamp":2}`,
	})

	a := NewAdapter(&domain.SourceConfig{
		Type:  domain.SourceTypeBadger,
		Name:  "archive",
		Path:  dir,
		Table: "events",
	})
	require.NoError(t, a.Connect(context.Background()))
	defer a.Close()

	result, err := a.Load(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.True(t, result.Records.Equals(makeRecords(
		map[string]int64{"stamp": 1, "value": 10},
		map[string]int64{"stamp": 2},
	)))
}

func TestBadgerAdapterColumnSelection(t *testing.T) {
	dir := writeArchive(t, []string{`{"stamp":1,"value":10,"junk":7}`})

	a := NewAdapter(&domain.SourceConfig{
		Type:    domain.SourceTypeBadger,
		Name:    "archive",
		Path:    dir,
		Table:   "events",
		Columns: []string{"stamp", "value"},
	})
	require.NoError(t, a.Connect(context.Background()))
	defer a.Close()

	result, err := a.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Records.Equals(makeRecords(
		map[string]int64{"stamp": 1, "value": 10},
	)))
}

func TestBadgerAdapterBadPayload(t *testing.T) {
	dir := writeArchive(t, []string{`not json`})

	a := NewAdapter(&domain.SourceConfig{
		Type:  domain.SourceTypeBadger,
		Name:  "archive",
		Path:  dir,
		Table: "events",
	})
	require.NoError(t, a.Connect(context.Background()))
	defer a.Close()

	_, err := a.Load(context.Background())
	assert.Error(t, err)
}

func TestBadgerAdapterLoadBeforeConnect(t *testing.T) {
	a := NewAdapter(&domain.SourceConfig{Type: domain.SourceTypeBadger, Name: "archive"})
	_, err := a.Load(context.Background())

	var notConnected *domain.ErrNotConnected
	assert.ErrorAs(t, err, &notConnected)
}
