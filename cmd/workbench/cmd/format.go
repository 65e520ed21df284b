package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aristath/workbench/internal/domain"
	"github.com/aristath/workbench/pkg/formatters"
)

var formatKinds = []string{"currency", "signed-currency", "compact", "percent", "number", "ratio", "duration", "metric"}

type formatOptions struct {
	sign     bool
	decimals int
	as       string
}

func newFormatCmd() *cobra.Command {
	opts := &formatOptions{}

	cmd := &cobra.Command{
		Use:   "format <kind> <value>",
		Short: "Format a single value the way the dashboard does",
		Long: fmt.Sprintf(`Format runs one of the display formatters on a value.

Kinds: %s

Negative values must follow "--" so they are not parsed as flags.`, strings.Join(formatKinds, ", ")),
		Example: `  workbench format currency 1234.5
  workbench format percent --sign 0.0345
  workbench format metric --as duration 1505
  workbench format signed-currency -- -250`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: formatKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}

			out, err := formatValue(args[0], value, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.sign, "sign", false, "prefix positive percentages with +")
	cmd.Flags().IntVar(&opts.decimals, "decimals", 0, "decimal places for number")
	cmd.Flags().StringVar(&opts.as, "as", "number", "metric format (currency, percent, number, ratio, duration)")

	return cmd
}

func formatValue(kind string, value float64, opts *formatOptions) (string, error) {
	switch strings.ToLower(kind) {
	case "currency":
		return formatters.Currency(value), nil
	case "signed-currency":
		return formatters.SignedCurrency(value), nil
	case "compact":
		return formatters.CompactCurrency(value), nil
	case "percent":
		return formatters.Percent(value, opts.sign), nil
	case "number":
		return formatters.Number(value, opts.decimals), nil
	case "ratio":
		return formatters.Ratio(value), nil
	case "duration":
		return formatters.Duration(value), nil
	case "metric":
		format, err := domain.ParseMetricFormat(opts.as)
		if err != nil {
			return "", err
		}
		return formatters.Metric(value, format), nil
	default:
		return "", fmt.Errorf("unknown kind %q (supported: %s)", kind, strings.Join(formatKinds, ", "))
	}
}
