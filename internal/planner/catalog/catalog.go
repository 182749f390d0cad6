// Package catalog holds the static inquiry catalog: the closed set of
// reasons a visitor can pick, each with its optional follow-up refinements,
// plus the suggestion chips offered on the message step.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ReasonID identifies one inquiry category. The set is closed and fixed at
// process start.
type ReasonID string

const (
	ReasonProject ReasonID = "project"
	ReasonQuote   ReasonID = "quote"
	ReasonSupport ReasonID = "support"
	ReasonProduct ReasonID = "product"
	ReasonStatus  ReasonID = "status"
	ReasonOther   ReasonID = "other"
)

// Reason pairs a ReasonID with its display label and the ordered follow-up
// refinements selectable once the reason is chosen.
type Reason struct {
	ID        ReasonID `yaml:"id"`
	Label     string   `yaml:"label"`
	Followups []string `yaml:"followups"`
}

type document struct {
	Reasons     []Reason `yaml:"reasons"`
	Suggestions []string `yaml:"suggestions"`
}

//go:embed catalog.yaml
var rawCatalog []byte

var (
	reasons     []Reason
	byID        map[ReasonID]Reason
	suggestions []string
)

func init() {
	var doc document
	if err := yaml.Unmarshal(rawCatalog, &doc); err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog.yaml invalid: %v", err))
	}
	reasons = doc.Reasons
	suggestions = doc.Suggestions
	byID = make(map[ReasonID]Reason, len(reasons))
	for _, r := range reasons {
		if _, dup := byID[r.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate reason id %q", r.ID))
		}
		byID[r.ID] = r
	}
}

// All returns every reason in declaration order.
func All() []Reason {
	out := make([]Reason, len(reasons))
	copy(out, reasons)
	return out
}

// Get looks up one reason by id.
func Get(id ReasonID) (Reason, bool) {
	r, ok := byID[id]
	return r, ok
}

// Label returns the display label for id, or the raw id when unknown.
func Label(id ReasonID) string {
	if r, ok := byID[id]; ok {
		return r.Label
	}
	return string(id)
}

// Labels maps ids to display labels, skipping unknown ids.
func Labels(ids []ReasonID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r.Label)
		}
	}
	return out
}

// Suggestions returns the ordered message suggestion chips.
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

// FollowupUnion returns the de-duplicated union of follow-up labels across
// the given reasons, preserving first-seen order in the iteration order of
// ids. Unknown ids contribute nothing.
func FollowupUnion(ids []ReasonID) []string {
	var out []string
	seen := map[string]bool{}
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			continue
		}
		for _, f := range r.Followups {
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// HasFollowups reports whether any of the given reasons carries a non-empty
// follow-up list.
func HasFollowups(ids []ReasonID) bool {
	for _, id := range ids {
		if r, ok := byID[id]; ok && len(r.Followups) > 0 {
			return true
		}
	}
	return false
}
