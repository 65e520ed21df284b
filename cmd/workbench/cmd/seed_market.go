package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aristath/workbench/internal/config"
	"github.com/aristath/workbench/internal/di"
	"github.com/aristath/workbench/internal/modules/market"
	"github.com/aristath/workbench/internal/utils"
)

type seedMarketOptions struct {
	symbols string
	days    int
	seed    int64
	start   string
}

func newSeedMarketCmd(root *rootOptions) *cobra.Command {
	opts := &seedMarketOptions{}

	cmd := &cobra.Command{
		Use:   "seed-market",
		Short: "Load generated daily bars into the market database",
		Long: `Seed-market writes a random-walk series of daily bars per symbol into the
market database configured through the environment (MARKET_DB_DRIVER,
WORKBENCH_DATA_DIR, MARKET_DB_DSN). Existing bars for the same days are replaced.`,
		Example: `  workbench seed-market
  workbench seed-market --symbols AAPL,NVDA --days 90 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := root.logger(cmd)

			start, err := time.Parse("2006-01-02", opts.start)
			if err != nil {
				return fmt.Errorf("invalid --start (want YYYY-MM-DD): %w", err)
			}
			if opts.days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", opts.days)
			}

			symbols := make([]string, 0)
			for _, raw := range utils.ParseCSV(opts.symbols) {
				symbol, err := market.NormalizeSymbol(raw)
				if err != nil {
					return err
				}
				symbols = append(symbols, symbol)
			}
			if len(symbols) == 0 {
				return fmt.Errorf("no symbols given")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			container, err := di.InitializeDatabases(cfg)
			if err != nil {
				return err
			}
			defer container.Close()

			repo := market.NewRepository(container.MarketDB, log)
			for i, symbol := range symbols {
				firstClose := 50 + float64(i)*75
				bars := market.GenerateBars(opts.seed+int64(i), opts.days, start, firstClose, 0.0004, 0.015)
				if err := repo.InsertBars(cmd.Context(), symbol, market.DailyTimeframe, bars); err != nil {
					return fmt.Errorf("seed %s: %w", symbol, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d bars\n", symbol, len(bars))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d symbols into %s\n", len(symbols), container.MarketDB.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.symbols, "symbols", "AAPL,MSFT,NVDA,SPY", "comma-separated symbols")
	cmd.Flags().IntVar(&opts.days, "days", 260, "number of daily bars per symbol")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "random seed")
	cmd.Flags().StringVar(&opts.start, "start", "2024-01-02", "first bar date (YYYY-MM-DD)")

	return cmd
}
