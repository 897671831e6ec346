package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/evcraddock/amlak/internal/catalog"
	"github.com/evcraddock/amlak/internal/property"
)

var numberPrinter = message.NewPrinter(language.English)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single listing in text format.
func printPropertySummary(w io.Writer, p *property.Property) {
	fmt.Fprintf(w, "Property #%s  %s\n", p.ID, p.Title)
	fmt.Fprintf(w, "  Price:    %s (%s toman)\n", property.FormatPrice(p.Price), formatNumber(p.Price))
	fmt.Fprintf(w, "  Area:     %d m²\n", p.Area)
	fmt.Fprintf(w, "  Rooms:    %d\n", p.Rooms)
	fmt.Fprintf(w, "  Baths:    %d\n", p.Bathrooms)
	fmt.Fprintf(w, "  Floor:    %d of %d\n", p.Floor, p.TotalFloors)
	fmt.Fprintf(w, "  Built:    %d\n", p.YearBuilt)
	fmt.Fprintf(w, "  Type:     %s\n", p.Type.Label())
	fmt.Fprintf(w, "  Status:   %s\n", p.Status.Label())
	fmt.Fprintf(w, "  Address:  %s\n", p.Address)
	if p.Coordinates != nil {
		fmt.Fprintf(w, "  Location: %.4f, %.4f", p.Coordinates.Latitude, p.Coordinates.Longitude)
		if p.Geohash != "" {
			fmt.Fprintf(w, " (%s)", p.Geohash)
		}
		fmt.Fprintln(w)
	}
	if len(p.Features) > 0 {
		fmt.Fprintf(w, "  Features: %s\n", strings.Join(p.Features, "، "))
	}
	fmt.Fprintf(w, "  Contact:  %s %s\n", p.ContactPerson, p.ContactPhone)
	fmt.Fprintf(w, "  Loan:     %s million toman (70%% of price)\n",
		formatNumber(property.LoanEstimate(p.Price, property.DefaultDownPayment)))
	if p.Featured {
		fmt.Fprintln(w, "  Featured")
	}
}

// printPropertyTable prints a list of listings as a formatted table.
func printPropertyTable(w io.Writer, props []*property.Property) error {
	if len(props) == 0 {
		fmt.Fprintln(w, "No properties found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tAREA\tROOMS\tUPDATED\tFEATURED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t-----\t-----\t----\t-----\t-------\t--------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		featured := ""
		if p.Featured {
			featured = "★"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			p.ID, truncate(p.Title, 30), formatNumber(p.Price), p.Area, p.Rooms, p.LastModified(), featured); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d properties\n", len(props))
	return nil
}

// printAgency prints the agency contact details.
func printAgency(w io.Writer, a *catalog.Agency) {
	fmt.Fprintln(w, a.Name)
	fmt.Fprintf(w, "  Address: %s\n", a.Address)
	fmt.Fprintf(w, "  Email:   %s\n", a.Email)
	fmt.Fprintf(w, "  Hours:   %s\n", a.WorkingHours)
	for _, ph := range a.Phones {
		fmt.Fprintf(w, "  Phone:   %s  %s\n", ph.Number, ph.Name)
	}
}

// printSummary prints catalog statistics.
func printSummary(w io.Writer, s property.Summary) {
	fmt.Fprintf(w, "Listings:     %d\n", s.Count)
	fmt.Fprintf(w, "Featured:     %d\n", s.FeaturedCount)
	fmt.Fprintf(w, "Total value:  %s toman (~%d billion)\n", formatNumber(s.TotalValue), s.TotalValueBillions())
	fmt.Fprintf(w, "Average area: %d m²\n", s.AverageArea)
}

// formatNumber groups digits with commas.
func formatNumber(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}
