package parser

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-forecast/internal/logger"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// MaxPrice is the exclusive upper bound for an accepted price.
	MaxPrice = 100000.0

	fallbackDelimiter = ","
)

// Warning reasons.
const (
	ReasonTooFewFields = "expected at least 2 fields"
	ReasonNoDate       = "no valid date field"
	ReasonNoPrice      = "no valid price field"
)

// delimiters in detection priority order.
var delimiters = []string{";", ",", "\t"}

// dateLayouts are DD.MM.YYYY, YYYY-MM-DD and MM/DD/YYYY. Single digit days and
// months are accepted.
var dateLayouts = []string{"2.1.2006", "2006-1-2", "1/2/2006"}

// RecordParser turns raw delimited text into ordered daily observations.
type RecordParser struct {
	logger *logger.Logger
}

// NewRecordParser creates a parser. A nil logger discards warnings.
func NewRecordParser(log *logger.Logger) *RecordParser {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &RecordParser{
		logger: log,
	}
}

type row struct {
	line  int
	date  time.Time
	price float64
}

// Parse reads every row of raw. Malformed rows are skipped and reported as warnings.
// Returns a FormatError when no valid row survives.
func (p *RecordParser) Parse(raw string) (types.ParseResult, error) {
	result := types.ParseResult{
		Observations:      nil,
		Warnings:          []types.ParseWarning{},
		Delimiter:         "",
		HeaderSkipped:     false,
		DuplicatesDropped: 0,
		TotalLines:        0,
	}

	rows := []row{}
	firstLine := true

	for i, rawLine := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(rawLine, "\r"))
		if line == "" {
			continue
		}

		result.TotalLines++

		if result.Delimiter == "" {
			result.Delimiter = DetectDelimiter(line)
		}

		date, price, reason := parseRow(line, result.Delimiter)

		if firstLine {
			firstLine = false

			if reason != "" {
				// Header line: detect the delimiter again on the first data line.
				result.HeaderSkipped = true
				result.Delimiter = ""

				continue
			}
		}

		if reason != "" {
			result.Warnings = append(result.Warnings, types.ParseWarning{
				Line:    i + 1,
				Reason:  reason,
				Content: line,
			})
			p.logger.Warn("Skipping malformed row",
				zap.Int("line", i+1),
				zap.String("reason", reason),
				zap.String("content", line),
			)

			continue
		}

		rows = append(rows, row{line: i + 1, date: date, price: price})
	}

	slices.SortStableFunc(rows, func(a, b row) int {
		return a.date.Compare(b.date)
	})

	observations := make([]types.Observation, 0, len(rows))

	for _, r := range rows {
		if n := len(observations); n > 0 && observations[n-1].Date.Equal(r.date) {
			result.DuplicatesDropped++

			continue
		}

		observations = append(observations, types.Observation{Date: r.date, Price: r.price})
	}

	if len(observations) == 0 {
		return result, errors.NewFormatError("no valid rows")
	}

	if result.Delimiter == "" {
		result.Delimiter = fallbackDelimiter
	}

	result.Observations = observations

	p.logger.Debug("Parsed price series",
		zap.Int("observations", len(observations)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Int("duplicates", result.DuplicatesDropped),
		zap.Bool("header_skipped", result.HeaderSkipped),
	)

	return result, nil
}

// DetectDelimiter returns the first of ";", "," and tab found in line, or "," when none is.
func DetectDelimiter(line string) string {
	for _, d := range delimiters {
		if strings.Contains(line, d) {
			return d
		}
	}

	return fallbackDelimiter
}

// parseRow extracts the date and the price of one line. reason is empty on success.
func parseRow(line string, delimiter string) (time.Time, float64, string) {
	fields := strings.Split(line, delimiter)
	if len(fields) < 2 {
		fields = strings.Split(line, fallbackDelimiter)
	}

	if len(fields) < 2 {
		return time.Time{}, 0, ReasonTooFewFields
	}

	dateIndex := -1

	var date time.Time

	for i, field := range fields {
		if parsed, ok := ParseDate(field); ok {
			dateIndex = i
			date = parsed

			break
		}
	}

	if dateIndex < 0 {
		return time.Time{}, 0, ReasonNoDate
	}

	for i, field := range fields {
		if i == dateIndex {
			continue
		}

		if price, ok := ParsePrice(field); ok {
			return date, price, ""
		}
	}

	return time.Time{}, 0, ReasonNoPrice
}

// ParseDate accepts DD.MM.YYYY, YYYY-MM-DD and MM/DD/YYYY tokens.
func ParseDate(token string) (time.Time, bool) {
	token = cleanToken(token)
	if token == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, token); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

// ParsePrice strips every character outside [0-9.-] and accepts finite values in (0, MaxPrice).
func ParsePrice(token string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}

		return -1
	}, token)
	if cleaned == "" {
		return 0, false
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}

	price := value.InexactFloat64()
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 || price >= MaxPrice {
		return 0, false
	}

	return price, true
}

func cleanToken(token string) string {
	return strings.Trim(strings.TrimSpace(token), "\"'")
}
