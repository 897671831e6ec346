package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/amlak/internal/property"
)

// listFlags mirrors the query parameters of the web UI and API. Prices
// are in toman.
type listFlags struct {
	query        string
	minPrice     int64
	maxPrice     int64
	minArea      int
	maxArea      int
	minRooms     int
	propType     string
	status       string
	neighborhood string
	featured     bool
	sort         string
}

func newListCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search and filter listings",
		Long: "List the listings matching a free-text search and filters, sorted by --sort.\n" +
			"Without filters every listing is shown in catalog order.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := f.criteria(cmd)
			if err != nil {
				return err
			}
			return runList(cmd, crit)
		},
	}

	cmd.Flags().StringVarP(&f.query, "query", "q", "", "text to find in title, description or address")
	cmd.Flags().Int64Var(&f.minPrice, "min-price", 0, "minimum price in toman")
	cmd.Flags().Int64Var(&f.maxPrice, "max-price", 0, "maximum price in toman")
	cmd.Flags().IntVar(&f.minArea, "min-area", 0, "minimum area in m²")
	cmd.Flags().IntVar(&f.maxArea, "max-area", 0, "maximum area in m²")
	cmd.Flags().IntVar(&f.minRooms, "min-rooms", 0, "minimum number of rooms")
	cmd.Flags().StringVar(&f.propType, "type", "", "property type (apartment|house|commercial|land)")
	cmd.Flags().StringVar(&f.status, "status", "", "listing status (for_sale|for_rent|sold|rented)")
	cmd.Flags().StringVar(&f.neighborhood, "neighborhood", "", "neighborhood name")
	cmd.Flags().BoolVar(&f.featured, "featured", false, "only featured listings (--featured=false for the rest)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort order ("+sortKeyList()+")")

	return cmd
}

// criteria builds query criteria from the flags the user actually set.
// Unlike the web UI, bad values are errors.
func (f *listFlags) criteria(cmd *cobra.Command) (property.Criteria, error) {
	flags := cmd.Flags()
	crit := property.Criteria{Search: f.query}

	if flags.Changed("min-price") {
		if f.minPrice < 0 {
			return crit, fmt.Errorf("--min-price must not be negative")
		}
		crit.Filter.MinPrice = &f.minPrice
	}
	if flags.Changed("max-price") {
		if f.maxPrice < 0 {
			return crit, fmt.Errorf("--max-price must not be negative")
		}
		crit.Filter.MaxPrice = &f.maxPrice
	}
	for _, b := range []struct {
		name string
		val  *int
		dst  **int
	}{
		{"min-area", &f.minArea, &crit.Filter.MinArea},
		{"max-area", &f.maxArea, &crit.Filter.MaxArea},
		{"min-rooms", &f.minRooms, &crit.Filter.MinRooms},
	} {
		if !flags.Changed(b.name) {
			continue
		}
		if *b.val < 0 {
			return crit, fmt.Errorf("--%s must not be negative", b.name)
		}
		*b.dst = b.val
	}

	if f.propType != "" {
		if !property.ValidPropertyType(f.propType) {
			return crit, fmt.Errorf("invalid property type %q (must be apartment, house, commercial or land)", f.propType)
		}
		crit.Filter.Type = property.PropertyType(f.propType)
	}
	if f.status != "" {
		if !property.ValidStatus(f.status) {
			return crit, fmt.Errorf("invalid status %q (must be for_sale, for_rent, sold or rented)", f.status)
		}
		crit.Filter.Status = property.Status(f.status)
	}
	crit.Filter.Neighborhood = strings.TrimSpace(f.neighborhood)
	if flags.Changed("featured") {
		crit.Filter.Featured = &f.featured
	}

	k, ok := property.ParseSortKey(f.sort)
	if !ok {
		return crit, fmt.Errorf("invalid sort %q (must be one of %s)", f.sort, sortKeyList())
	}
	crit.Sort = k

	return crit, nil
}

func runList(cmd *cobra.Command, crit property.Criteria) error {
	src, err := newSource()
	if err != nil {
		return err
	}

	props, err := src.ListProperties(crit)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), props)
	}
	return printPropertyTable(cmd.OutOrStdout(), props)
}

func sortKeyList() string {
	keys := make([]string, len(property.SortKeys))
	for i, k := range property.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, "|")
}
