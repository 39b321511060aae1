package cmd

import (
	"log"
	"os"
	"throne-backend/services/throne"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(giftersCmd)
}

var giftersCmd = &cobra.Command{
	Use:   "gifters <username>",
	Short: "Prints every gifter of a creator with their all-time USD totals.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rec, err := service.Record(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Gifter", "Gifts", "USD Total", "Latest Gift"})
		for _, rollup := range throne.FoldGifters(rec.PreviousGifts) {
			t.AppendRow(table.Row{
				rollup.Username,
				rollup.NbGifts,
				rollup.Sum.Total,
				rollup.Latest.Name,
			})
		}
		t.Render()
	},
}
