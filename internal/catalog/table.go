package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	colContentID  = "content_id"
	colTitle      = "title"
	colSubject    = "subject"
	colDifficulty = "difficulty"
	colType       = "type"
	colQuizLink   = "quiz_link"
	colVideoLink  = "video_link"
)

// RequiredColumns must all be present in a tabular catalog source.
var RequiredColumns = []string{colContentID, colTitle, colSubject, colDifficulty, colType}

// fromTable maps a header row plus data rows to records. Column order is
// irrelevant and extra columns are ignored.
func fromTable(header []string, rows [][]string) ([]Record, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	records := make([]Record, 0, len(rows))
	for n, row := range rows {
		if blankRow(row) {
			continue
		}
		rec, err := parseRecord(func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// fromFields maps keyed documents (YAML, JSON) to records.
func fromFields(docs []map[string]string) ([]Record, error) {
	records := make([]Record, 0, len(docs))
	for n, doc := range docs {
		fields := make(map[string]string, len(doc))
		for k, v := range doc {
			fields[strings.TrimSpace(k)] = v
		}
		for _, col := range RequiredColumns {
			if _, ok := fields[col]; !ok {
				return nil, fmt.Errorf("record %d: %w: %q", n+1, ErrMissingColumn, col)
			}
		}
		rec, err := parseRecord(func(col string) string { return fields[col] })
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(get func(col string) string) (Record, error) {
	raw := strings.TrimSpace(get(colContentID))
	id, err := strconv.Atoi(raw)
	if err != nil {
		return Record{}, fmt.Errorf("%w: content_id %q is not an integer", ErrInvalidRecord, raw)
	}
	return Record{
		ContentID:  id,
		Title:      strings.TrimSpace(get(colTitle)),
		Subject:    Normalize(get(colSubject)),
		Difficulty: NormalizeDifficulty(get(colDifficulty)),
		Type:       strings.TrimSpace(get(colType)),
		QuizLink:   strings.TrimSpace(get(colQuizLink)),
		VideoLink:  strings.TrimSpace(get(colVideoLink)),
	}, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
