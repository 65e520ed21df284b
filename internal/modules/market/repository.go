package market

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/workbench/internal/database"
	"github.com/aristath/workbench/internal/utils"
)

// Repository reads and writes the market_bars table
type Repository struct {
	db  *database.DB
	log zerolog.Logger
}

// NewRepository creates a market repository
func NewRepository(db *database.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "market").Logger(),
	}
}

// GetBars returns the most recent limit bars, oldest first
func (r *Repository) GetBars(ctx context.Context, symbol, timeframe string, limit int) ([]Bar, error) {
	query := `
		SELECT ts, open, high, low, close, volume
		FROM market_bars
		WHERE symbol = ? AND timeframe = ?
		ORDER BY ts DESC
		LIMIT ?
	`

	done := utils.MeasureDBQuery("get_bars", r.log)
	rows, err := r.db.QueryContext(ctx, query, symbol, timeframe, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bars: %w", err)
	}
	defer rows.Close()

	bars := make([]Bar, 0, limit)
	for rows.Next() {
		var (
			ts  int64
			bar Bar
		)
		if err := rows.Scan(&ts, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar: %w", err)
		}
		bar.Time = time.Unix(ts, 0).UTC()
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bars: %w", err)
	}

	// newest first from the query
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	done(len(bars))
	return bars, nil
}

// GetSnapshot reads the two most recent daily closes of symbol.
// With a single bar the previous close equals the last one.
func (r *Repository) GetSnapshot(ctx context.Context, symbol string) (Snapshot, error) {
	query := `
		SELECT ts, close
		FROM market_bars
		WHERE symbol = ? AND timeframe = ?
		ORDER BY ts DESC
		LIMIT 2
	`

	rows, err := r.db.QueryContext(ctx, query, symbol, DailyTimeframe)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	var (
		times  []int64
		closes []float64
	)
	for rows.Next() {
		var (
			ts    int64
			price float64
		)
		if err := rows.Scan(&ts, &price); err != nil {
			return Snapshot{}, fmt.Errorf("failed to scan close: %w", err)
		}
		times = append(times, ts)
		closes = append(closes, price)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("error iterating closes: %w", err)
	}

	switch len(closes) {
	case 0:
		return Snapshot{}, fmt.Errorf("%w for %s", ErrNoData, symbol)
	case 1:
		return NewSnapshot(symbol, closes[0], closes[0], time.Unix(times[0], 0).UTC()), nil
	default:
		return NewSnapshot(symbol, closes[0], closes[1], time.Unix(times[0], 0).UTC()), nil
	}
}

// InsertBars upserts bars for symbol and timeframe in one transaction
func (r *Repository) InsertBars(ctx context.Context, symbol, timeframe string, bars []Bar) error {
	if len(bars) == 0 {
		return nil
	}

	query := r.db.Rebind(`
		INSERT INTO market_bars (symbol, timeframe, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (symbol, timeframe, ts) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume
	`)

	err := database.WithTransaction(r.db.Conn(), func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, b := range bars {
			if _, err := stmt.ExecContext(ctx, symbol, timeframe, b.Time.Unix(),
				b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
				return fmt.Errorf("failed to insert bar %s: %w", b.Time.Format(time.RFC3339), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Debug().
		Str("symbol", symbol).
		Str("timeframe", timeframe).
		Int("bars", len(bars)).
		Msg("Bars stored")
	return nil
}

// Symbols lists the symbols that have bars in timeframe
func (r *Repository) Symbols(ctx context.Context, timeframe string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT symbol FROM market_bars WHERE timeframe = ? ORDER BY symbol`, timeframe)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}
