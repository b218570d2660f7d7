package zenos

import (
	"fmt"

	"github.com/scanprof/zenos/internal/domain/model"
)

// Suggest lists, for every group still missing a girl or a boy, at most one
// swap per role. A donor group must hold at least two of the missing sex so
// that it stays mixed. Suggest does not modify groups.
func Suggest(groups []model.Group) []model.Suggestion {
	var out []model.Suggestion
	for gi, g := range groups {
		need, give, ok := g.Missing()
		if !ok {
			continue
		}
		for _, r := range model.Roles {
			ei := g.IndexOf(r, give)
			if ei < 0 {
				continue
			}
			for gj, other := range groups {
				if gj == gi {
					continue
				}
				ej := other.IndexOf(r, need)
				if ej < 0 || other.Count(need) < 2 {
					continue
				}
				out = append(out, newSuggestion(groups, gi, ei, gj, ej))
				break
			}
		}
	}
	return out
}

// Swap exchanges the two slots named by s. Role tags travel with the
// participants; suggestions only pair equal roles.
func Swap(groups []model.Group, s model.Suggestion) error {
	if !inRange(groups, s.A) || !inRange(groups, s.B) {
		return fmt.Errorf("%w: slot out of range", ErrInvalidSwap)
	}
	if s.A.Group == s.B.Group {
		return fmt.Errorf("%w: both sides in group %d", ErrInvalidSwap, s.A.Group+1)
	}
	swapSlots(groups, s.A.Group, s.A.Index, s.B.Group, s.B.Index)
	return nil
}

func inRange(groups []model.Group, s model.SwapSide) bool {
	return s.Group >= 0 && s.Group < len(groups) && s.Index >= 0 && s.Index < len(groups[s.Group])
}
