// Package draft defines the in-progress inquiry record the planner widget
// builds up across steps, and the toggle semantics for its selections.
package draft

import (
	"strings"
	"unicode/utf8"

	"github.com/tiertech/blueprint/internal/planner/catalog"
)

// MaxMessageLen bounds the free-text message.
const MaxMessageLen = 3000

// Draft is the single mutable entity of the wizard. The widget owns exactly
// one Draft for the lifetime of a session and mirrors it to durable storage
// on every mutation. JSON tags match the relay wire contract.
type Draft struct {
	Reasons   []catalog.ReasonID `json:"reasons"`
	Followups []string           `json:"followups"`
	Message   string             `json:"message"`
	Email     string             `json:"email"`
	Name      string             `json:"name"`
}

// New returns the canonical empty Draft.
func New() Draft {
	return Draft{
		Reasons:   []catalog.ReasonID{},
		Followups: []string{},
	}
}

// HasReason reports whether id is currently selected.
func (d Draft) HasReason(id catalog.ReasonID) bool {
	for _, r := range d.Reasons {
		if r == id {
			return true
		}
	}
	return false
}

// HasFollowup reports whether label is currently selected.
func (d Draft) HasFollowup(label string) bool {
	for _, f := range d.Followups {
		if f == label {
			return true
		}
	}
	return false
}

// ToggleReason returns the draft with id selected if it was not, or removed
// if it was. Selection order is preserved for the remaining entries.
func (d Draft) ToggleReason(id catalog.ReasonID) Draft {
	if d.HasReason(id) {
		kept := make([]catalog.ReasonID, 0, len(d.Reasons)-1)
		for _, r := range d.Reasons {
			if r != id {
				kept = append(kept, r)
			}
		}
		d.Reasons = kept
		return d
	}
	d.Reasons = append(append([]catalog.ReasonID{}, d.Reasons...), id)
	return d
}

// ToggleFollowup returns the draft with label toggled. Deselecting a reason
// never prunes follow-ups already chosen through it; they merely stop being
// offered (see FollowupOptions).
func (d Draft) ToggleFollowup(label string) Draft {
	if d.HasFollowup(label) {
		kept := make([]string, 0, len(d.Followups)-1)
		for _, f := range d.Followups {
			if f != label {
				kept = append(kept, f)
			}
		}
		d.Followups = kept
		return d
	}
	d.Followups = append(append([]string{}, d.Followups...), label)
	return d
}

// SetMessage replaces the message, truncating past MaxMessageLen runes.
func (d Draft) SetMessage(msg string) Draft {
	if utf8.RuneCountInString(msg) > MaxMessageLen {
		msg = string([]rune(msg)[:MaxMessageLen])
	}
	d.Message = msg
	return d
}

// AppendSuggestion appends a suggestion chip to the message as a bullet
// line, on its own line when the message already has content.
func (d Draft) AppendSuggestion(s string) Draft {
	if d.Message == "" {
		return d.SetMessage("• " + s)
	}
	return d.SetMessage(d.Message + "\n• " + s)
}

// FollowupOptions returns the follow-up labels currently offered: the
// ordered union across the selected reasons.
func (d Draft) FollowupOptions() []string {
	return catalog.FollowupUnion(d.Reasons)
}

// ReadyForDetails reports whether the reason step's guard is satisfied.
func (d Draft) ReadyForDetails() bool {
	return len(d.Reasons) > 0
}

// ReadyForContact reports whether the details step's guard is satisfied.
func (d Draft) ReadyForContact() bool {
	return strings.TrimSpace(d.Message) != ""
}

// ReadyToSend reports whether the contact step's guard is satisfied.
func (d Draft) ReadyToSend() bool {
	return strings.TrimSpace(d.Email) != "" && strings.TrimSpace(d.Message) != ""
}
