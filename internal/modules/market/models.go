// Package market serves OHLCV bars and last-close snapshots from the market database.
package market

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoData is returned when a symbol has no bars
var ErrNoData = errors.New("no market data")

// ErrInvalidQuery is returned for malformed bar queries
var ErrInvalidQuery = errors.New("invalid query")

// DailyTimeframe is the timeframe snapshots are read from
const DailyTimeframe = "1d"

// Timeframes lists the accepted bar timeframes
var Timeframes = []string{"1m", "5m", "15m", "1h", "4h", DailyTimeframe, "1w"}

const (
	DefaultLimit = 200
	MaxLimit     = 5000
)

// Bar is one OHLCV candle. Time is the bar open time.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Snapshot is the latest daily close of a symbol against the one before it
type Snapshot struct {
	Symbol    string    `json:"symbol"`
	LastClose float64   `json:"last_close"`
	PrevClose float64   `json:"prev_close"`
	Change    float64   `json:"change"`
	ChangePct float64   `json:"change_pct"`
	AsOf      time.Time `json:"as_of"`
}

// NewSnapshot derives change and change percent from two closes
func NewSnapshot(symbol string, last, prev float64, asOf time.Time) Snapshot {
	s := Snapshot{
		Symbol:    symbol,
		LastClose: last,
		PrevClose: prev,
		Change:    last - prev,
		AsOf:      asOf,
	}
	if prev != 0 {
		s.ChangePct = (last - prev) / prev * 100
	}
	return s
}

// NormalizeSymbol trims and upper-cases a ticker
func NormalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("%w: symbol is required", ErrInvalidQuery)
	}
	if len(symbol) > 16 {
		return "", fmt.Errorf("%w: symbol %q is too long", ErrInvalidQuery, symbol)
	}
	return symbol, nil
}

// ValidTimeframe reports whether tf is one of Timeframes
func ValidTimeframe(tf string) bool {
	for _, t := range Timeframes {
		if t == tf {
			return true
		}
	}
	return false
}
