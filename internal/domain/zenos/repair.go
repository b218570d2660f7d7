package zenos

import (
	"fmt"

	"github.com/scanprof/zenos/internal/domain/model"
)

// Rebalance makes one pass over groups and, for each group missing a girl or
// a boy, performs at most one same-role swap with another group. Donor slots
// come from an index of (role, sex) positions taken before the pass; it is
// not refreshed after swaps, so a later swap may trade two members of the
// same sex. Donor groups currently holding at least two of the missing sex
// are preferred. Earlier groups are not revisited. The applied swaps are
// returned in order.
func Rebalance(groups []model.Group) []model.Suggestion {
	idx := indexByRole(groups)
	var applied []model.Suggestion
	for gi := range groups {
		need, give, ok := groups[gi].Missing()
		if !ok {
			continue
		}
		for ei := range groups[gi] {
			member := groups[gi][ei]
			if member.Sexe != give {
				continue
			}
			donor, found := pickDonor(groups, idx[roleSex{member.EffectiveRole(), need}], gi, need)
			if !found {
				continue
			}
			s := newSuggestion(groups, gi, ei, donor.group, donor.index)
			swapSlots(groups, gi, ei, donor.group, donor.index)
			applied = append(applied, s)
			break
		}
	}
	return applied
}

type slot struct {
	group, index int
}

type roleSex struct {
	role model.Role
	sex  model.Sex
}

// indexByRole records where each known sex sits, per role, in slot order.
func indexByRole(groups []model.Group) map[roleSex][]slot {
	idx := make(map[roleSex][]slot)
	for gi, g := range groups {
		for ei, p := range g {
			if !p.Sexe.Known() {
				continue
			}
			k := roleSex{p.EffectiveRole(), p.Sexe}
			idx[k] = append(idx[k], slot{gi, ei})
		}
	}
	return idx
}

// pickDonor returns the first candidate outside group gi whose group now
// holds at least two of need, else the first candidate outside gi.
func pickDonor(groups []model.Group, candidates []slot, gi int, need model.Sex) (slot, bool) {
	first, found := slot{}, false
	for _, c := range candidates {
		if c.group == gi {
			continue
		}
		if groups[c.group].Count(need) >= 2 {
			return c, true
		}
		if !found {
			first, found = c, true
		}
	}
	return first, found
}

func swapSlots(groups []model.Group, gi, ei, gj, ej int) {
	groups[gi][ei], groups[gj][ej] = groups[gj][ej], groups[gi][ei]
}

func newSuggestion(groups []model.Group, gi, ei, gj, ej int) model.Suggestion {
	a, b := groups[gi][ei], groups[gj][ej]
	s := model.Suggestion{
		A: side(a, gi, ei),
		B: side(b, gj, ej),
	}
	s.Label = fmt.Sprintf("Échanger %s %s (%s, %s) du Groupe %d ↔ %s %s (%s, %s) du Groupe %d",
		a.Prenom, a.Nom, a.Sexe, s.A.Role, gi+1,
		b.Prenom, b.Nom, b.Sexe, s.B.Role, gj+1)
	return s
}

func side(p model.Participant, g, i int) model.SwapSide {
	return model.SwapSide{
		Group:  g,
		Index:  i,
		Nom:    p.Nom,
		Prenom: p.Prenom,
		Role:   p.EffectiveRole(),
		Sexe:   p.Sexe,
	}
}
