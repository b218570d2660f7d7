// Package zenos builds ZENOS groups: four participants per group, one from
// each VMA quartile, then repairs groups that lack a girl or a boy with
// same-role swaps across groups.
package zenos

import (
	"sort"

	"github.com/scanprof/zenos/internal/domain/model"
)

// Buckets holds the quartile slices of an ascending VMA ranking. Each slice
// keeps ascending order.
type Buckets struct {
	H      []model.Participant
	MPlus  []model.Participant
	MMinus []model.Participant
	B      []model.Participant
}

// Len returns the number of participants left in all buckets.
func (b *Buckets) Len() int {
	return len(b.H) + len(b.MPlus) + len(b.MMinus) + len(b.B)
}

// Remainder concatenates what is left in H, M+, M-, B order.
func (b *Buckets) Remainder() []model.Participant {
	out := make([]model.Participant, 0, b.Len())
	out = append(out, b.H...)
	out = append(out, b.MPlus...)
	out = append(out, b.MMinus...)
	return append(out, b.B...)
}

// SortByVMA returns a copy of ps in ascending VMA order. Ties keep input order.
func SortByVMA(ps []model.Participant) []model.Participant {
	out := make([]model.Participant, len(ps))
	copy(out, ps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].VMA < out[j].VMA })
	return out
}

// SplitQuartiles cuts an ascending list at floor(n/4), floor(n/2) and
// floor(3n/4). The buckets own their storage.
func SplitQuartiles(asc []model.Participant) Buckets {
	n := len(asc)
	q1, q2, q3 := n/4, n/2, 3*n/4
	return Buckets{
		B:      clone(asc[:q1]),
		MMinus: clone(asc[q1:q2]),
		MPlus:  clone(asc[q2:q3]),
		H:      clone(asc[q3:]),
	}
}

// end selects which side of an ascending bucket a draw pops.
type end int

const (
	low  end = iota // lowest VMA, front
	high            // highest VMA, back
)

func take(bucket *[]model.Participant, from end) (model.Participant, bool) {
	q := *bucket
	if len(q) == 0 {
		return model.Participant{}, false
	}
	if from == high {
		p := q[len(q)-1]
		*bucket = q[:len(q)-1]
		return p, true
	}
	p := q[0]
	*bucket = q[1:]
	return p, true
}

// draw pops from the first non-empty bucket in order.
func draw(from end, order ...*[]model.Participant) (model.Participant, bool) {
	for _, b := range order {
		if p, ok := take(b, from); ok {
			return p, true
		}
	}
	return model.Participant{}, false
}

// Partition sorts candidates by VMA and assembles floor(n/4) groups, each
// drawing H and M+ from the top of their buckets and M- and B from the bottom,
// falling back to neighbouring buckets when one runs dry. Participants not
// drawn are returned as the remainder.
//
// When no bucket can fill a slot the group under construction is dropped and
// generation stops. Members already drawn for that group are not put back.
func Partition(candidates []model.Participant) ([]model.Group, []model.Participant) {
	b := SplitQuartiles(SortByVMA(candidates))
	count := len(candidates) / model.GroupSize
	groups := make([]model.Group, 0, count)

	for g := 0; g < count; g++ {
		h, okH := draw(high, &b.H, &b.MPlus, &b.MMinus, &b.B)
		mp, okMP := draw(high, &b.MPlus, &b.MMinus, &b.H, &b.B)
		mm, okMM := draw(low, &b.MMinus, &b.MPlus, &b.H, &b.B)
		lo, okB := draw(low, &b.B, &b.MMinus, &b.MPlus, &b.H)
		if !okH || !okMP || !okMM || !okB {
			break
		}
		h.Role, mp.Role, mm.Role, lo.Role = model.RoleHigh, model.RoleMidHigh, model.RoleMidLow, model.RoleBottom
		groups = append(groups, model.Group{h, mp, mm, lo})
	}
	return groups, b.Remainder()
}

func clone(ps []model.Participant) []model.Participant {
	out := make([]model.Participant, len(ps))
	copy(out, ps)
	return out
}
