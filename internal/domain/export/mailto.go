package export

import (
	"net/url"
	"strings"
)

// MailSubject is the subject line for sheet.
func MailSubject(opts Options, title string) string {
	return "Groupes " + opts.withDefaults().PrintTitle + " – " + title
}

// MailBody lists each group's members by name.
func MailBody(sheet Sheet, opts Options) string {
	opts = opts.withDefaults()
	lines := []string{
		"Bonjour,",
		"",
		"Voici vos groupes pour le " + opts.PrintTitle + " – " + sheet.Title + " :",
		"",
	}
	for i, g := range sheet.Groups {
		lines = append(lines, GroupLabel(i)+" :")
		for _, p := range g {
			lines = append(lines, "- "+p.Nom+" "+p.Prenom)
		}
		lines = append(lines, "")
	}
	lines = append(lines, "Cordialement,", opts.Signature)
	return strings.Join(lines, "\n")
}

// Mailto builds a mailto: link with an empty recipient so the sender picks
// one in their mail client.
func Mailto(sheet Sheet, opts Options) string {
	return "mailto:?subject=" + escape(MailSubject(opts, sheet.Title)) +
		"&body=" + escape(MailBody(sheet, opts))
}

// escape percent-encodes s with spaces as %20, which mail clients expect.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
