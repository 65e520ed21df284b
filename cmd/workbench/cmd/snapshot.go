package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aristath/workbench/internal/mockdata"
	"github.com/aristath/workbench/internal/modules/dashboard"
	"github.com/aristath/workbench/internal/store"
)

type snapshotOptions struct {
	fixture  string
	format   string
	out      string
	selectID string
}

func newSnapshotCmd(root *rootOptions) *cobra.Command {
	opts := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the dashboard or export the seeded state",
		Long: `Snapshot seeds a store from the mock dataset and renders it.

Formats:
  - text: the formatted operations dashboard
  - json: the raw state
  - msgpack: the raw state, msgpack-encoded (same field names as json)`,
		Example: `  workbench snapshot
  workbench snapshot --select dep-momentum-alpha
  workbench snapshot --format msgpack --out state.msgpack`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := root.logger(cmd)

			ds, err := mockdata.NewFixtureProvider(opts.fixture, log).Load(cmd.Context())
			if err != nil {
				return err
			}

			s := store.New(store.NewState(), log)
			mockdata.Seed(s, ds)
			if opts.selectID != "" {
				s.Dispatch(store.SelectDeployment{ID: opts.selectID})
			}

			out := cmd.OutOrStdout()
			if opts.out != "" {
				f, err := os.Create(opts.out)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			state := s.State()
			switch strings.ToLower(opts.format) {
			case "text":
				return printView(out, dashboard.Build(state))
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(state)
			case "msgpack":
				return store.EncodeMsgpack(out, state)
			default:
				return fmt.Errorf("unknown --format %q (supported: text, json, msgpack)", opts.format)
			}
		},
	}

	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "YAML dataset (default: embedded demo dataset)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format (text, json, msgpack)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&opts.selectID, "select", "", "deployment id to show in the detail panel")

	return cmd
}

func printView(out io.Writer, view dashboard.View) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Workbench snapshot (seq %d)\n\n", view.Seq)

	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, card := range view.Cards {
		fmt.Fprintf(w, "%s\t%s\n", card.Label, card.Formatted)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "DEPLOYMENT\tSTATUS\tCAPITAL\tTOTAL P&L\tDAY P&L\tRUNTIME\tPOSITIONS")
	for _, d := range view.Deployments {
		name := d.Name
		if d.IsPaper {
			name += " (paper)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s (%s)\t%s (%s)\t%s\t%d\n",
			name, d.Status, d.Capital, d.TotalPnL, d.TotalPnLPct, d.DayPnL, d.DayPnLPct, d.Runtime, d.PositionCount)
	}

	if sel := view.Selected; sel != nil {
		fmt.Fprintln(w)
		if !sel.Found {
			fmt.Fprintf(w, "Selected deployment %s not found\n", sel.ID)
		} else {
			fmt.Fprintf(w, "%s\n", sel.Deployment.Name)
			if sel.Narrative != "" {
				fmt.Fprintf(w, "%s\n", sel.Narrative)
			}
			fmt.Fprintln(w, "SYMBOL\tSIDE\tSTATE\tQTY\tENTRY\tCURRENT\tVALUE\tUNREALIZED")
			for _, p := range sel.Positions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					p.Symbol, p.Side, p.State, p.Quantity, p.EntryPrice, p.CurrentPrice, p.MarketValue, p.UnrealizedPnL)
			}
		}
	}

	if len(view.Cues) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SEVERITY\tCUE\tRECOVERY\tACTION")
		for _, c := range view.Cues {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Severity, c.Message, c.AvgRecovery, c.SuggestedAction)
		}
	}

	return w.Flush()
}
