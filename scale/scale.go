package scale

import (
	"math"
	"sort"
	"strings"

	"github.com/jsphweid/musixbooth/model"
)

const (
	DefaultPrimaryLimit   = 5
	DefaultSecondaryLimit = 5
	DefaultMaxResults     = 10
)

// Matcher ranks every (root, template) pair against a selection of pitch
// classes. It holds no state between calls.
type Matcher struct {
	templates      []model.ScaleTemplate
	PrimaryLimit   int
	SecondaryLimit int
	MaxResults     int
}

func NewMatcher() *Matcher {
	return NewMatcherWithCatalog(templates)
}

func NewMatcherWithCatalog(ts []model.ScaleTemplate) *Matcher {
	return &Matcher{
		templates:      copyTemplates(ts),
		PrimaryLimit:   DefaultPrimaryLimit,
		SecondaryLimit: DefaultSecondaryLimit,
		MaxResults:     DefaultMaxResults,
	}
}

func (m *Matcher) Catalog() []model.ScaleTemplate {
	return copyTemplates(m.templates)
}

// Candidate is the absolute pitch class set of template t rooted at root.
func Candidate(root int, t model.ScaleTemplate) PitchClassSet {
	return NewPitchClassSet(t.Intervals...).Transpose(root)
}

func coverage(selected, candidate PitchClassSet) int {
	common := selected.Intersect(candidate).Len()
	return int(math.Round(100 * float64(common) / float64(selected.Len())))
}

// Rank scores every candidate against notes and returns those sharing at
// least one note, by descending percentage. Ties keep ascending root then
// catalog order.
func (m *Matcher) Rank(notes []int) []model.Match {
	return m.rank(NewPitchClassSet(notes...))
}

func (m *Matcher) rank(selected PitchClassSet) []model.Match {
	if selected.Empty() {
		return []model.Match{}
	}

	var res []model.Match
	for root := 0; root < 12; root++ {
		for _, t := range m.templates {
			candidate := Candidate(root, t)
			pct := coverage(selected, candidate)
			if pct == 0 {
				continue
			}
			res = append(res, model.Match{
				Name:       NoteName(root) + " " + t.Name,
				Root:       root,
				Scale:      t.Name,
				Percentage: pct,
				Missing:    candidate.Minus(selected).Slice(),
				Extra:      selected.Minus(candidate).Slice(),
			})
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Percentage > res[j].Percentage
	})
	return res
}

// FindMatches ranks notes and picks the display list: up to PrimaryLimit
// Major/Minor scales, then up to SecondaryLimit of the rest, capped at
// MaxResults.
func (m *Matcher) FindMatches(notes []int) []model.Match {
	return m.Display(m.Rank(notes))
}

// MatchSelection is FindMatches for a Selection; when the selection has a
// root, only candidates on that root are kept.
func (m *Matcher) MatchSelection(s Selection) []model.Match {
	ranked := m.rank(s.notes)
	if root, ok := s.Root(); ok {
		kept := make([]model.Match, 0, len(ranked))
		for _, r := range ranked {
			if r.Root == root {
				kept = append(kept, r)
			}
		}
		ranked = kept
	}
	return m.Display(ranked)
}

func IsPrimary(name string) bool {
	return strings.Contains(name, "Major") || strings.Contains(name, "Minor")
}

// Display splits an already ranked list into the Major/Minor family and the
// rest, keeping rank order inside each.
func (m *Matcher) Display(ranked []model.Match) []model.Match {
	var primary, secondary []model.Match
	for _, r := range ranked {
		if IsPrimary(r.Name) {
			primary = append(primary, r)
		} else {
			secondary = append(secondary, r)
		}
	}

	res := make([]model.Match, 0, m.MaxResults)
	res = append(res, head(primary, m.PrimaryLimit)...)
	res = append(res, head(secondary, m.SecondaryLimit)...)
	return head(res, m.MaxResults)
}

func head(ms []model.Match, n int) []model.Match {
	if n < 0 {
		n = 0
	}
	if len(ms) > n {
		return ms[:n]
	}
	return ms
}
