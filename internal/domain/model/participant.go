// Package model contains domain models passed between layers.
package model

// Sex is the normalised gender of a participant. X means unknown and never
// counts toward mixed-gender checks.
type Sex string

// Known sexes.
const (
	Female  Sex = "F"
	Male    Sex = "G"
	Unknown Sex = "X"
)

// Known reports whether s is F or G.
func (s Sex) Known() bool { return s == Female || s == Male }

// Opposite returns the other known sex. Unknown maps to itself.
func (s Sex) Opposite() Sex {
	switch s {
	case Female:
		return Male
	case Male:
		return Female
	default:
		return Unknown
	}
}

// Role is the quartile a grouped participant was drawn for.
type Role string

// Group roles, from the top quartile down.
const (
	RoleHigh    Role = "H"
	RoleMidHigh Role = "M+"
	RoleMidLow  Role = "M-"
	RoleBottom  Role = "B"
	defaultRole Role = RoleMidHigh
)

// GroupSize is the number of slots in a complete group.
const GroupSize = 4

// Roles lists the roles in slot order.
var Roles = [GroupSize]Role{RoleHigh, RoleMidHigh, RoleMidLow, RoleBottom}

// Participant is a normalised, eligible input record.
type Participant struct {
	Nom      string  `json:"nom"`
	Prenom   string  `json:"prenom"`
	Classe   string  `json:"classe"`
	Sexe     Sex     `json:"sexe"`
	Distance string  `json:"distance"`
	VMA      float64 `json:"vma"`
	Role     Role    `json:"role,omitempty"`
}

// EffectiveRole returns the role tag, treating an untagged participant as M+.
func (p Participant) EffectiveRole() Role {
	if p.Role == "" {
		return defaultRole
	}
	return p.Role
}

// Group is an ordered set of slots; swaps exchange participants by position.
type Group []Participant

// CountSexes returns how many F and G members the group holds.
func (g Group) CountSexes() (f, m int) {
	for _, p := range g {
		switch p.Sexe {
		case Female:
			f++
		case Male:
			m++
		}
	}
	return f, m
}

// Count returns the number of members of sex s.
func (g Group) Count(s Sex) int {
	f, m := g.CountSexes()
	switch s {
	case Female:
		return f
	case Male:
		return m
	default:
		return 0
	}
}

// Mixed reports whether the group has at least one F and one G.
func (g Group) Mixed() bool {
	f, m := g.CountSexes()
	return f > 0 && m > 0
}

// Missing returns the sex the group lacks and the sex it would give away to
// gain it. ok is false when the group is already mixed.
func (g Group) Missing() (need, give Sex, ok bool) {
	f, m := g.CountSexes()
	switch {
	case f == 0:
		return Female, Male, true
	case m == 0:
		return Male, Female, true
	default:
		return "", "", false
	}
}

// IndexOf returns the first slot holding role r and sex s, or -1.
func (g Group) IndexOf(r Role, s Sex) int {
	for i, p := range g {
		if p.Sexe == s && p.EffectiveRole() == r {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the group that does not share backing storage.
func (g Group) Clone() Group {
	out := make(Group, len(g))
	copy(out, g)
	return out
}

// SwapSide identifies one participant of a proposed swap.
type SwapSide struct {
	Group  int    `json:"group"`
	Index  int    `json:"index"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Role   Role   `json:"role"`
	Sexe   Sex    `json:"sexe"`
}

// Suggestion is a same-role, cross-group exchange that makes group A mixed.
type Suggestion struct {
	A     SwapSide `json:"a"`
	B     SwapSide `json:"b"`
	Label string   `json:"label"`
}
