package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresSource reads catalog records from a table with the same columns
// as the file formats. Rows are ordered by content_id.
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource creates a database-backed catalog source.
func NewPostgresSource(pool *pgxpool.Pool, table string) (*PostgresSource, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresSource{pool: pool, table: table}, nil
}

func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

func (s *PostgresSource) Load(ctx context.Context) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		`SELECT content_id::text, title, subject, difficulty, COALESCE(type, ''),
		        COALESCE(to_jsonb(t)->>'quiz_link', ''), COALESCE(to_jsonb(t)->>'video_link', '')
		 FROM %s t
		 ORDER BY content_id`, s.table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}

	var docs []map[string]string
	for rows.Next() {
		var id, title, subject, difficulty, typ, quiz, video string
		if err := rows.Scan(&id, &title, &subject, &difficulty, &typ, &quiz, &video); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		docs = append(docs, map[string]string{
			colContentID:  id,
			colTitle:      title,
			colSubject:    subject,
			colDifficulty: difficulty,
			colType:       typ,
			colQuizLink:   quiz,
			colVideoLink:  video,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	return fromFields(docs)
}
