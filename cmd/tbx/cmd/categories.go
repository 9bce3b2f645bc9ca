package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Short:   "List catalog categories",
		Example: `  tbx categories`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.Categories(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Categories) == 0 {
				fmt.Println("No categories found.")
				return nil
			}

			return printCategoriesTable(resp.Categories)
		},
	}
}
