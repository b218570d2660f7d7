// Package export renders grouping results for sharing: CSV, a print-ready
// HTML page, and a mailto: link.
package export

import (
	"strconv"

	"github.com/scanprof/zenos/internal/domain/model"
)

// AllClassesTitle is the heading used when the class filter was ignored.
const AllClassesTitle = "Tous (classe ignorée)"

// Defaults for Options.
const (
	DefaultPrintTitle = "ZENOS TOUR"
	DefaultFooter     = "ScanProf - Équipe EPS"
	DefaultSignature  = "L’équipe ScanProf"
)

// Options carries the configurable texts of the exports.
type Options struct {
	PrintTitle string
	Footer     string
	Signature  string
}

// DefaultOptions returns the stock export texts.
func DefaultOptions() Options {
	return Options{
		PrintTitle: DefaultPrintTitle,
		Footer:     DefaultFooter,
		Signature:  DefaultSignature,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PrintTitle == "" {
		o.PrintTitle = d.PrintTitle
	}
	if o.Footer == "" {
		o.Footer = d.Footer
	}
	if o.Signature == "" {
		o.Signature = d.Signature
	}
	return o
}

// Title names a class filter for headings: the all-classes title for an empty
// or sentinel filter, "Classe <code>" otherwise.
func Title(filter, allSentinel string) string {
	if filter == "" || filter == allSentinel {
		return AllClassesTitle
	}
	return "Classe " + filter
}

// GroupLabel is the 1-based label of group index i.
func GroupLabel(i int) string {
	return "Groupe " + strconv.Itoa(i+1)
}

// FormatVMA prints a VMA the shortest way that round-trips.
func FormatVMA(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Sheet is the data every exporter reads.
type Sheet struct {
	Title     string
	Groups    []model.Group
	Remainder []model.Participant
}
