package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	evalforge "github.com/evalforge/evalforge-go"
)

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "Submit and inspect execution traces",
}

var tracesSubmitCmd = &cobra.Command{
	Use:   "submit <file.json>",
	Short: "Submit a JSON array of traces in one batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var traces []evalforge.Trace
		if err := json.Unmarshal(data, &traces); err != nil {
			return fmt.Errorf("invalid trace file: %w", err)
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Traces().Submit(cmd.Context(), traces); err != nil {
			return err
		}
		fmt.Printf("submitted %d traces\n", len(traces))
		return nil
	},
}

func init() {
	tracesCmd.AddCommand(tracesSubmitCmd)
	rootCmd.AddCommand(tracesCmd)
}
