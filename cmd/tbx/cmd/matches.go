package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func matchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matches <listing-id>",
		Short: "Find exchange partners for a listing",
		Long: "Find listings whose sellers want what you have and have what\n" +
			"you want, ranked by compatibility score.",
		Example: `  # Find matches for a listing
  tbx matches 6f1c9a4e-7d2b-4c8e-9f3a-1b5d8e2c7a90

  # JSON output for scripting
  tbx matches 6f1c9a4e-7d2b-4c8e-9f3a-1b5d8e2c7a90 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.Matches(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Matches) == 0 {
				fmt.Println("No matches found.")
				return nil
			}

			fmt.Printf("Found %d matches for %s\n\n", resp.Total, resp.OriginID)
			return printMatchesTable(resp.Matches)
		},
	}
}

func chainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chains <listing-id>",
		Short: "Find three-party trade chains for a listing",
		Long: "Find circular trades where you give to B, B gives to C, and C\n" +
			"gives to you. Useful when no direct swap exists.",
		Example: `  tbx chains 6f1c9a4e-7d2b-4c8e-9f3a-1b5d8e2c7a90`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.Chains(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Chains) == 0 {
				fmt.Println("No chains found.")
				return nil
			}

			fmt.Printf("Found %d chains for %s\n\n", resp.Total, resp.OriginID)
			return printChains(resp.Chains)
		},
	}
}
