package types

import (
	"fmt"
	"time"
)

// Observation is one daily close.
type Observation struct {
	// Date is the calendar date of the observation (UTC midnight).
	Date time.Time `yaml:"date" json:"date"`
	// Price is the closing price. Always positive.
	Price float64 `yaml:"price" json:"price"`
}

// ParseWarning describes a row that was skipped while parsing.
type ParseWarning struct {
	// Line is the 1-based line number in the raw input.
	Line int `yaml:"line" json:"line"`
	// Reason explains why the row was rejected.
	Reason string `yaml:"reason" json:"reason"`
	// Content is the raw line.
	Content string `yaml:"content" json:"content"`
}

// ParseResult is the outcome of parsing one raw text payload.
type ParseResult struct {
	// Observations are sorted ascending by date with unique dates.
	Observations []Observation
	// Warnings lists every skipped row.
	Warnings []ParseWarning
	// Delimiter is the field separator detected on the first data line.
	Delimiter string
	// HeaderSkipped reports whether the first line was treated as a header.
	HeaderSkipped bool
	// DuplicatesDropped counts rows removed because their date was already seen.
	DuplicatesDropped int
	// TotalLines counts the non-blank lines in the input.
	TotalLines int
}

// DataSummary is a short description of a loaded dataset.
type DataSummary struct {
	Count     int       `yaml:"count" json:"count"`
	StartDate time.Time `yaml:"start_date" json:"start_date"`
	EndDate   time.Time `yaml:"end_date" json:"end_date"`
	MinPrice  float64   `yaml:"min_price" json:"min_price"`
	MaxPrice  float64   `yaml:"max_price" json:"max_price"`
}

// DateRange renders the covered period, e.g. "2024-01-02 - 2024-12-31".
func (s DataSummary) DateRange() string {
	if s.Count == 0 {
		return NotAvailable
	}

	return fmt.Sprintf("%s - %s", s.StartDate.Format(DateLayout), s.EndDate.Format(DateLayout))
}

// PriceRange renders the lowest and highest price, e.g. "$95.10 - $130.42".
func (s DataSummary) PriceRange() string {
	if s.Count == 0 {
		return NotAvailable
	}

	return fmt.Sprintf("$%.2f - $%.2f", s.MinPrice, s.MaxPrice)
}
