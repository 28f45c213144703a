package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	evalforge "github.com/evalforge/evalforge-go"
)

var (
	scoreItemID  string
	scoreOutput  string
	scoreScorers []string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one agent output against a dataset item",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		specs := make([]evalforge.ScorerSpec, 0, len(scoreScorers))
		for _, id := range scoreScorers {
			specs = append(specs, evalforge.ScorerSpec{ScorerID: id})
		}

		result, err := client.Evaluations().Score(cmd.Context(), &evalforge.ScoreRequest{
			ItemID:  scoreItemID,
			Output:  scoreOutput,
			Scorers: specs,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreItemID, "item", "", "dataset item ID (required)")
	scoreCmd.Flags().StringVar(&scoreOutput, "output", "", "agent output to score (required)")
	scoreCmd.Flags().StringSliceVar(&scoreScorers, "scorer", nil, "scorer ID (repeatable, required)")
	scoreCmd.MarkFlagRequired("item")
	scoreCmd.MarkFlagRequired("output")
	scoreCmd.MarkFlagRequired("scorer")
	rootCmd.AddCommand(scoreCmd)
}
