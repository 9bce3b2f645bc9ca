package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func listingsCmd() *cobra.Command {
	listingsRoot := &cobra.Command{
		Use:   "listings",
		Short: "Look up listings",
	}

	listingsRoot.AddCommand(listingsGetCmd())

	return listingsRoot
}

func listingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show listing details",
		Example: `  tbx listings get 6f1c9a4e-7d2b-4c8e-9f3a-1b5d8e2c7a90`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			l, err := c.GetListing(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(l)
			}

			return printListingDetail(l)
		},
	}
}
