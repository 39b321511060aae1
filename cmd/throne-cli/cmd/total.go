package cmd

import (
	"log"
	"os"
	"strings"
	"throne-backend/services/throne"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(totalCmd)
}

var totalCmd = &cobra.Command{
	Use:   "total <username>",
	Short: "Prints the all-time gift totals of a creator.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rec, err := service.Record(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}
		rollup := throne.RollupGifts(rec.PreviousGifts)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRow(table.Row{"Gifts", rollup.NbGifts})
		t.AppendRow(table.Row{"Gifters", rollup.NbGifters})
		t.AppendRow(table.Row{"USD Price", rollup.Sum.Price})
		t.AppendRow(table.Row{"USD Fees", rollup.Sum.Fees})
		t.AppendRow(table.Row{"USD Subtotal", rollup.Sum.SubTotal})
		t.AppendRow(table.Row{"USD Shipping", rollup.Sum.Shipping})
		t.AppendRow(table.Row{"USD Total", rollup.Sum.Total})

		if displayCurrency != "" {
			view, err := throne.BuildTotal(
				cmd.Context(), rec, service.Converter(), displayCurrency,
			)
			if err != nil {
				log.Fatal(err)
			}
			t.AppendSeparator()
			for _, suffix := range []string{"_price", "_fees", "_subtotal", "_shipping", "_total"} {
				key := strings.ToLower(displayCurrency) + suffix
				t.AppendRow(table.Row{key, view[key]})
			}
		}
		t.Render()
	},
}
