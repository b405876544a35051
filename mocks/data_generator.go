package mocks

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-forecast/internal/types"
)

// DataGenerator generates realistic daily closes for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how a price series is generated.
type GeneratorConfig struct {
	// StartDate is the first trading day of the series
	StartDate time.Time
	// Days is the number of trading days to generate
	Days int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility is the daily return standard deviation (0.01 = 1%)
	Volatility float64
	// Drift is the expected daily return
	Drift float64
	// SkipWeekends leaves Saturdays and Sundays out of the calendar
	SkipWeekends bool
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartDate:    time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC),
		Days:         500,
		InitialPrice: 100.0,
		Volatility:   0.012,
		Drift:        0.0002,
		SkipWeekends: true,
	}
}

// Generate creates a daily close series following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.Observation {
	data := make([]types.Observation, config.Days)
	price := config.InitialPrice
	date := config.StartDate

	for i := 0; i < config.Days; i++ {
		if config.SkipWeekends {
			for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
				date = date.AddDate(0, 0, 1)
			}
		}

		data[i] = types.Observation{
			Date:  date,
			Price: roundToDecimals(price, 4),
		}

		// Box-Muller transform for a standard normal draw
		u1 := 1 - g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		next := price * (1 + config.Drift + config.Volatility*z)
		if next <= 0 {
			next = price * 0.99 // Prevent negative prices
		}

		price = next
		date = date.AddDate(0, 0, 1)
	}

	return data
}

// Dialect describes one supported input text layout.
type Dialect struct {
	Name       string
	Delimiter  string
	DateLayout string
	Header     string
}

var (
	// DialectSemicolon is the European export layout: "02.01.2024;100.5".
	DialectSemicolon = Dialect{Name: "semicolon", Delimiter: ";", DateLayout: "02.01.2006", Header: "Date;Close"}
	// DialectComma is the ISO layout: "2024-01-02,100.5".
	DialectComma = Dialect{Name: "comma", Delimiter: ",", DateLayout: "2006-01-02", Header: "Date,Close"}
	// DialectTab is the US layout: "01/02/2024\t100.5".
	DialectTab = Dialect{Name: "tab", Delimiter: "\t", DateLayout: "01/02/2006", Header: "Date\tClose"}
)

// Render writes observations as delimited text with a header line.
func Render(observations []types.Observation, dialect Dialect) string {
	var b strings.Builder

	b.WriteString(dialect.Header)
	b.WriteString("\n")

	for _, o := range observations {
		fmt.Fprintf(&b, "%s%s%.4f\n", o.Date.Format(dialect.DateLayout), dialect.Delimiter, o.Price)
	}

	return b.String()
}

// GenerateCSV is a convenience function that renders a default series in the comma dialect.
func GenerateCSV(days int) string {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Days = days

	return Render(gen.Generate(config), DialectComma)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
