package cmd

import (
	"log"
	"os"
	"throne-backend/services/throne"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	leaderboardCmd.Flags().StringVar(
		&leaderboardPeriod, "time", "all",
		"Leaderboard period: all, month or week.",
	)
	rootCmd.AddCommand(leaderboardCmd)
}

var leaderboardPeriod string

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard <username>",
	Short: "Prints the gifter leaderboard of a creator.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rec, err := service.Record(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}
		rows, err := throne.BuildLeaderboard(rec, leaderboardPeriod)
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Gifter", "Gifts", "USD Total"})
		for i, row := range rows {
			t.AppendRow(table.Row{
				i + 1,
				row.Username,
				row.NbGifts,
				row.UsdTotal,
			})
		}
		t.Render()
	},
}
