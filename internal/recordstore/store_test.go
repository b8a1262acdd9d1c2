package recordstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempRecordPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "candidate.csv")
}

func TestAppendColumnRoundTrip(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	err := store.AppendColumn(path, "Q1", "Why this job?", "I am dedicated and punctual.", FormatScore(0.25))
	require.NoError(t, err)

	record := store.Load(path)
	require.Len(t, record.Columns, 1)

	col := record.Columns[0]
	assert.Equal(t, "Q1", col.Label)
	assert.Equal(t, "Why this job?", col.Prompt)
	assert.Equal(t, "I am dedicated and punctual.", col.Response)
	assert.Equal(t, 0.25, col.Score)
}

func TestAppendColumnPadsMissingValues(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	// only a prompt supplied: response and score rows must be padded
	require.NoError(t, store.AppendColumn(path, "Q1", "Why this job?"))

	record := store.Load(path)
	require.Len(t, record.Columns, 1)
	assert.Equal(t, "", record.Columns[0].Response)
	assert.Equal(t, 0.0, record.Columns[0].Score)
}

func TestAppendColumnTruncatesExtras(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	require.NoError(t, store.AppendColumn(path, "Q1", "p", "r", "0.5", "extra", "ignored"))

	record := store.Load(path)
	require.Len(t, record.Columns, 1)
	assert.Equal(t, 0.5, record.Columns[0].Score)
}

func TestAppendColumnOverwritesByLabel(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	require.NoError(t, store.AppendColumn(path, "Q1", "p", "first answer", "0.1"))
	require.NoError(t, store.AppendColumn(path, "Q2", "p2", "other", "0.2"))
	require.NoError(t, store.AppendColumn(path, "Q1", "p", "retried answer", "0.3"))

	record := store.Load(path)
	require.Len(t, record.Columns, 2, "no duplicate columns on retry")

	col, ok := record.Find("Q1")
	require.True(t, ok)
	assert.Equal(t, "retried answer", col.Response)
	assert.Equal(t, 0.3, col.Score)

	// insertion order preserved
	assert.Equal(t, []string{"Q1", "Q2"}, record.Labels())
}

func TestAppendColumnEmptyLabel(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	err := store.AppendColumn(path, "  ", "p", "r", "0")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestAppendColumnRepairsShortFile(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	// a file with only two logical rows
	require.NoError(t, os.WriteFile(path, []byte("Q1\nprompt\n"), 0o644))

	require.NoError(t, store.AppendColumn(path, "Q2", "p2", "r2", "0.4"))

	record := store.Load(path)
	require.Len(t, record.Columns, 2)

	repaired, ok := record.Find("Q1")
	require.True(t, ok)
	assert.Equal(t, "prompt", repaired.Prompt)
	assert.Equal(t, "", repaired.Response)
	assert.Equal(t, 0.0, repaired.Score)
}

func TestEnsureIdempotent(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	require.NoError(t, store.Ensure(path, []string{"ID"}))

	record := store.Load(path)
	require.Len(t, record.Columns, 1)
	assert.Equal(t, "ID", record.Columns[0].Label)

	// second ensure with a different schema must not touch the file
	require.NoError(t, store.AppendColumn(path, "Q1", "p", "r", "0.5"))
	require.NoError(t, store.Ensure(path, []string{"other", "schema"}))

	record = store.Load(path)
	assert.Equal(t, []string{"ID", "Q1"}, record.Labels())
}

func TestUpdateScore(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	require.NoError(t, store.AppendColumn(path, "Q1", "p", "r", "0.1"))
	require.NoError(t, store.UpdateScore(path, "Q1", 0.9))

	record := store.Load(path)
	col, ok := record.Find("Q1")
	require.True(t, ok)
	assert.Equal(t, 0.9, col.Score)
	assert.Equal(t, "p", col.Prompt, "prompt must be untouched")
	assert.Equal(t, "r", col.Response, "response must be untouched")
}

func TestUpdateScoreAbsentLabel(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	require.NoError(t, store.AppendColumn(path, "Q1", "p", "r", "0.1"))

	err := store.UpdateScore(path, "Q99", 0.5)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateScoreMissingFile(t *testing.T) {
	store := New(nil)

	err := store.UpdateScore(tempRecordPath(t), "Q1", 0.5)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadMissingFileYieldsEmptyRecord(t *testing.T) {
	store := New(nil)

	record := store.Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.NotNil(t, record)
	assert.True(t, record.Empty())
}

func TestLoadMalformedFileYieldsEmptyRecord(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)
	require.NoError(t, os.WriteFile(path, []byte("\"unterminated quote\n"), 0o644))

	record := store.Load(path)
	require.NotNil(t, record)
	assert.True(t, record.Empty())
}

func TestAppendColumnQuotedContent(t *testing.T) {
	store := New(nil)
	path := tempRecordPath(t)

	answer := "I said \"yes\",\nand meant it"
	require.NoError(t, store.AppendColumn(path, "Q1", "prompt, with comma", answer, "0.5"))

	record := store.Load(path)
	col, ok := record.Find("Q1")
	require.True(t, ok)
	assert.Equal(t, answer, col.Response)
	assert.Equal(t, "prompt, with comma", col.Prompt)
}
