package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM makes spreadsheet tools detect the encoding.
const utf8BOM = "\uFEFF"

// CSVHeader is the header row of the group export.
var CSVHeader = []string{"Groupe", "Nom", "Prénom", "Classe", "Sexe", "VMA", "Distance"}

// CSV writes one row per grouped participant, labelled "Groupe N".
func CSV(w io.Writer, sheet Sheet) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, g := range sheet.Groups {
		label := GroupLabel(i)
		for _, p := range g {
			row := []string{label, p.Nom, p.Prenom, p.Classe, string(p.Sexe), FormatVMA(p.VMA), p.Distance}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
