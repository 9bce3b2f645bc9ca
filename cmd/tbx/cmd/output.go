package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printMatchesTable(matches []domain.MatchResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("SCORE\tTIER\tID\tTITLE\tCATEGORY\tREASONS\n")
	for i := range matches {
		m := &matches[i]
		tw.writef("%d\t%s\t%s\t%s\t%s\t%s\n",
			m.Score,
			m.Tier,
			m.Listing.ID,
			truncate(m.Listing.Title, 40),
			m.Listing.CategoryID,
			truncate(strings.Join(m.Reasons, "; "), 60),
		)
	}
	return tw.finish()
}

func printChains(chains []domain.ChainExchange) error {
	tw := newTabWriter(os.Stdout)
	for i := range chains {
		c := &chains[i]
		tw.writef("Chain %d (score %d):\n", i+1, c.TotalScore)
		for j := range c.Links {
			l := &c.Links[j]
			tw.writef("  %d.\t%s\thas: %s\twants: %s\n",
				j+1,
				l.Listing.ID,
				truncate(l.DisplayHas, 40),
				truncate(l.DisplayWants, 40),
			)
		}
	}
	return tw.finish()
}

func printListingDetail(l *domain.Listing) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", l.ID)
	tw.writef("Title:\t%s\n", l.Title)
	tw.writef("Category:\t%s\n", l.CategoryID)
	if l.SubcategoryID != "" {
		tw.writef("Subcategory:\t%s\n", l.SubcategoryID)
	}
	tw.writef("Mode:\t%s\n", l.TradeMode)
	tw.writef("Status:\t%s\n", l.Status)
	if l.Price != nil {
		tw.writef("Price:\t%.2f\n", *l.Price)
	}
	if l.Governorate != "" {
		tw.writef("Location:\t%s, %s\n", l.Governorate, l.City)
	}
	if l.LegacyText != "" {
		tw.writef("Wants (free text):\t%s\n", l.LegacyText)
	}
	return tw.finish()
}

func printCategoriesTable(cats []domain.Category) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tICON\tFIELDS\tSUBCATEGORIES\n")
	for i := range cats {
		tw.writef("%s\t%s\t%s\t%d\t%d\n",
			cats[i].ID,
			cats[i].DisplayName,
			cats[i].Icon,
			len(cats[i].Fields),
			len(cats[i].Subcategories),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
