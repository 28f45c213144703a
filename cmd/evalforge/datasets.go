package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	evalforge "github.com/evalforge/evalforge-go"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Inspect datasets and their items",
}

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		it, err := client.Datasets().List(nil)
		if err != nil {
			return err
		}
		for {
			ds, err := it.Next(cmd.Context())
			if errors.Is(err, evalforge.ErrIteratorExhausted) {
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\t%d items\n", ds.ID, ds.Name, ds.ItemCount)
		}
	},
}

var datasetsItemsCmd = &cobra.Command{
	Use:   "items <dataset-id>",
	Short: "List the items of a dataset as JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		it, err := client.Datasets().Items(args[0], nil)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		for {
			item, err := it.Next(cmd.Context())
			if errors.Is(err, evalforge.ErrIteratorExhausted) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
	},
}

func init() {
	datasetsCmd.AddCommand(datasetsListCmd, datasetsItemsCmd)
	rootCmd.AddCommand(datasetsCmd)
}
