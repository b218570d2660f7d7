package roster

import (
	"fmt"

	"github.com/scanprof/zenos/internal/domain/classcode"
	"github.com/scanprof/zenos/internal/domain/model"
)

// AllClasses is the class filter that ignores the class.
const AllClasses = "__TOUS__"

// MinCandidates is the smallest roster that can form one group.
const MinCandidates = model.GroupSize

// Selection is the outcome of filtering a roster.
type Selection struct {
	Candidates []model.Participant
	// Rejected counts records skipped for lack of a finite VMA.
	Rejected int
	// Filtered counts records with a valid VMA but another class.
	Filtered int
}

// Participant converts a record into a typed participant. ok is false when
// the record has no finite VMA.
func Participant(r RawRecord) (model.Participant, bool) {
	v, _ := r.Lookup(FieldVMA)
	vma, ok := ParseVMA(v)
	if !ok {
		return model.Participant{}, false
	}
	return model.Participant{
		Nom:      r.Text(FieldNom),
		Prenom:   r.Text(FieldPrenom),
		Classe:   classcode.Canon(r.Text(FieldClasse)),
		Sexe:     NormalizeSex(r.Text(FieldSexe)),
		Distance: r.Text(FieldDistance),
		VMA:      vma,
	}, true
}

// Eligible keeps, in input order, the records with a finite VMA that belong
// to filter. filter is AllClasses or a class label; a label with no
// canonical code ("", "--") also selects every class.
func Eligible(records []RawRecord, filter string) Selection {
	want := ""
	if filter != AllClasses {
		want = classcode.Canon(filter)
	}
	all := want == ""

	sel := Selection{Candidates: make([]model.Participant, 0, len(records))}
	for _, r := range records {
		p, ok := Participant(r)
		if !ok {
			sel.Rejected++
			continue
		}
		if !all && p.Classe != want {
			sel.Filtered++
			continue
		}
		sel.Candidates = append(sel.Candidates, p)
	}
	return sel
}

// Candidates is Eligible plus the minimum-size check.
func Candidates(records []RawRecord, filter string) (Selection, error) {
	sel := Eligible(records, filter)
	if len(sel.Candidates) < MinCandidates {
		return sel, fmt.Errorf("%w: %d found, %d required", ErrNotEnoughParticipants, len(sel.Candidates), MinCandidates)
	}
	return sel, nil
}
