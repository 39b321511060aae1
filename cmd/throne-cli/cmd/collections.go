package cmd

import (
	"log"
	"os"
	"throne-backend/services/throne"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

var collectionsCmd = &cobra.Command{
	Use:   "collections <username>",
	Short: "Prints every wishlist collection of a creator with its totals.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rec, err := service.Record(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}
		views, err := throne.BuildCollectionsDetailed(
			cmd.Context(), rec, service.Converter(), displayCurrency,
		)
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Id", "Items", "USD Total"})
		for _, view := range views {
			t.AppendRow(table.Row{
				view["name"],
				view["id"],
				view["items"],
				view["usd_price"],
			})
		}
		t.Render()
	},
}
