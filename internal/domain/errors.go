package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a source has no header row
var ErrEmptyDataset = errors.New("dataset is empty")

// DataSourceError reports a dataset that is missing or cannot be parsed.
// It is fatal to the pipeline: nothing partial is ever returned with it.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %q: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// UnknownMetricError is returned for a metric name outside the fixed selector set
type UnknownMetricError struct {
	Name string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown metric %q", e.Name)
}

// IsDataSourceError reports whether err wraps a DataSourceError
func IsDataSourceError(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse)
}

// IsUnknownMetricError reports whether err wraps an UnknownMetricError
func IsUnknownMetricError(err error) bool {
	var ume *UnknownMetricError
	return errors.As(err, &ume)
}
