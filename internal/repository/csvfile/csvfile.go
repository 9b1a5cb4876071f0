package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/swissrenewables/backend/internal/domain"
)

// Source reads plant tables from comma-delimited files with a header row
type Source struct {
	comma rune
}

// Option configures a Source
type Option func(*Source)

// WithComma sets the field delimiter
func WithComma(r rune) Option {
	return func(s *Source) {
		s.comma = r
	}
}

// NewSource creates a CSV plant source
func NewSource(opts ...Option) *Source {
	s := &Source{comma: ','}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read parses the file at path
func (s *Source) Read(ctx context.Context, path string) (*domain.PlantTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.DataSourceError{Source: path, Err: err}
	}
	defer f.Close()

	return s.parse(ctx, path, f)
}

func (s *Source) parse(ctx context.Context, path string, r io.Reader) (*domain.PlantTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.comma

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.DataSourceError{Source: path, Err: domain.ErrEmptyDataset}
	}
	if err != nil {
		return nil, &domain.DataSourceError{Source: path, Err: fmt.Errorf("failed to read header: %w", err)}
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, &domain.DataSourceError{Source: path, Err: err}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.DataSourceError{Source: path, Err: err}
		}
		rows = append(rows, record)
	}

	return domain.NewPlantTable(path, header, rows)
}
