package recordstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Store reads and writes columnar record files. It assumes single-writer,
// many-reader access per candidate; callers serialize writes externally.
type Store struct {
	logger *zap.Logger
}

// New creates a record store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Ensure creates the backing file with the initial four-row structure if it
// is absent. It no-ops when the file already exists, even if its schema
// differs: the store never auto-migrates an existing file.
func (s *Store) Ensure(path string, labels []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	rows := emptyRows(0)
	for _, label := range labels {
		appendCell(rows, label, "", "", "0.0")
	}

	return s.writeRows(path, rows)
}

// AppendColumn writes one column under the given label. The values are the
// prompt, response and score rows in order: missing trailing values are
// padded with empty strings and extras are dropped, deterministically. When
// the file is missing it is created fresh with only this column; when it has
// fewer than four logical rows it is repaired by padding before the insert.
// Re-appending an existing label overwrites its values in place.
func (s *Store) AppendColumn(path, label string, values ...string) error {
	if strings.TrimSpace(label) == "" {
		return &SchemaError{Label: label, Reason: "label must not be empty"}
	}

	// pad/truncate to exactly the prompt, response and score rows
	cells := make([]string, RowCount-1)
	copy(cells, values)

	rows, err := s.readRows(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("unreadable record file, recreating",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		rows = emptyRows(0)
	}

	if idx := indexOf(rows[RowLabel], label); idx >= 0 {
		for row, cell := range cells {
			rows[row+1][idx] = cell
		}
	} else {
		appendCell(rows, label, cells[0], cells[1], cells[2])
	}

	return s.writeRows(path, rows)
}

// UpdateScore overwrites only the score row for the labelled column, leaving
// prompt and response untouched.
func (s *Store) UpdateScore(path, label string, score float64) error {
	rows, err := s.readRows(path)
	if err != nil {
		return fmt.Errorf("record file %q: %w", path, ErrNotFound)
	}

	idx := indexOf(rows[RowLabel], label)
	if idx < 0 {
		return fmt.Errorf("label %q in %q: %w", label, path, ErrNotFound)
	}

	rows[RowScore][idx] = FormatScore(score)
	return s.writeRows(path, rows)
}

// Load reads the record at path. It fails soft: a missing or malformed file
// yields an empty Record rather than an error, so historical reads never
// abort a session.
func (s *Store) Load(path string) *Record {
	rows, err := s.readRows(path)
	if err != nil {
		s.logger.Debug("loading record yields empty result",
			zap.String("path", path),
			zap.Error(err),
		)
		return &Record{}
	}

	record := &Record{Columns: make([]AnswerColumn, 0, len(rows[RowLabel]))}
	for idx, label := range rows[RowLabel] {
		record.Columns = append(record.Columns, AnswerColumn{
			Label:    label,
			Prompt:   rows[RowPrompt][idx],
			Response: rows[RowResponse][idx],
			Score:    parseScore(rows[RowScore][idx]),
		})
	}

	return record
}

// FormatScore renders a score the way the score row stores it.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

func parseScore(cell string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0.0
	}
	return value
}

// readRows returns exactly RowCount rows of equal width. Short files are
// repaired by padding empty rows; rows beyond RowCount are dropped.
func (s *Store) readRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}

	rows := emptyRows(width)
	for i := 0; i < RowCount && i < len(raw); i++ {
		copy(rows[i], raw[i])
	}

	return rows, nil
}

// writeRows persists atomically: write a sibling temp file, then rename over
// the target. A failed write never leaves a torn record behind.
func (s *Store) writeRows(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating record directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".record-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp record file: %w", err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.WriteAll(rows)
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing record file: %w", writeErr)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing record file %q: %w", path, err)
	}

	return nil
}

func indexOf(cells []string, label string) int {
	for i, cell := range cells {
		if cell == label {
			return i
		}
	}
	return -1
}

func emptyRows(width int) [][]string {
	rows := make([][]string, RowCount)
	for i := range rows {
		rows[i] = make([]string, width)
	}
	return rows
}

func appendCell(rows [][]string, label, prompt, response, score string) {
	rows[RowLabel] = append(rows[RowLabel], label)
	rows[RowPrompt] = append(rows[RowPrompt], prompt)
	rows[RowResponse] = append(rows[RowResponse], response)
	rows[RowScore] = append(rows[RowScore], score)
}
