package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFeaturedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List featured listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := newSource()
			if err != nil {
				return err
			}
			props, err := src.Featured()
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), props)
			}
			return printPropertyTable(cmd.OutOrStdout(), props)
		},
	}
}

func newNeighborhoodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neighborhoods",
		Short: "List the neighborhoods that have listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := newSource()
			if err != nil {
				return err
			}
			names, err := src.Neighborhoods()
			if err != nil {
				return err
			}
			if isJSON() {
				if names == nil {
					names = []string{}
				}
				return printJSON(cmd.OutOrStdout(), names)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func newContactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact",
		Short: "Show the agency's contact details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := newSource()
			if err != nil {
				return err
			}
			a, err := src.Agency()
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), a)
			}
			printAgency(cmd.OutOrStdout(), a)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Long:  "Show listing count, featured count, total value and average area of the local catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog()
			if err != nil {
				return err
			}
			s := cat.Summary()
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), s)
			}
			printSummary(cmd.OutOrStdout(), s)
			return nil
		},
	}
}
