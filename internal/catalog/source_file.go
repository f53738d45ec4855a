package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPaths are the file candidates tried when none are configured.
var DefaultPaths = []string{
	"data/content.csv",
	"content.csv",
	"./data/content.csv",
	"./content.csv",
}

// Source yields catalog records from one location.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Record, error)
}

// FileSource reads a catalog file. The format follows the extension:
// .xlsx, .yaml/.yml and .json are recognized, anything else is read as CSV.
type FileSource struct {
	Path string
}

// FileSources wraps each path in a FileSource.
func FileSources(paths []string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sources = append(sources, FileSource{Path: p})
	}
	return sources
}

func (s FileSource) Name() string {
	return "file:" + s.Path
}

func (s FileSource) Load(_ context.Context) ([]Record, error) {
	info, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", s.Path)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".xlsx":
		return readXLSX(s.Path)
	case ".yaml", ".yml":
		return readYAML(s.Path)
	case ".json":
		return readJSON(s.Path)
	default:
		return readCSV(s.Path)
	}
}

func readCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyCatalog
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return fromTable(header, rows)
}
