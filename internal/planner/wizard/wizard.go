// Package wizard implements the planner's step state machine. A Machine is
// an explicit value carrying the current step, visibility, and the Draft;
// every event is a pure transition returning the next Machine. Persistence
// and rendering are the caller's concern.
package wizard

import (
	"github.com/tiertech/blueprint/internal/planner/catalog"
	"github.com/tiertech/blueprint/internal/planner/draft"
)

// Step names one wizard screen.
type Step int

const (
	StepReason Step = iota
	StepFollowup
	StepDetails
	StepContact
	StepConfirm
)

func (s Step) String() string {
	switch s {
	case StepReason:
		return "reason"
	case StepFollowup:
		return "followup"
	case StepDetails:
		return "details"
	case StepContact:
		return "contact"
	case StepConfirm:
		return "confirm"
	}
	return "unknown"
}

// Machine is the complete wizard state. The Open flag is orthogonal to the
// step: closing the widget never changes the step.
type Machine struct {
	Step    Step
	Open    bool
	Draft   draft.Draft
	Sending bool
	Sent    bool
	Err     string
}

// New returns a closed machine on the reason step owning d.
func New(d draft.Draft) Machine {
	return Machine{Step: StepReason, Draft: d}
}

// Launch opens the widget without touching the step.
func (m Machine) Launch() Machine {
	m.Open = true
	return m
}

// Close hides the widget; the step and draft are untouched, so reopening
// resumes where the user left off.
func (m Machine) Close() Machine {
	m.Open = false
	return m
}

// ToggleReason toggles a reason chip. Legal only on the reason step.
func (m Machine) ToggleReason(id catalog.ReasonID) Machine {
	if m.Step != StepReason {
		return m
	}
	m.Draft = m.Draft.ToggleReason(id)
	return m
}

// ToggleFollowup toggles a follow-up chip. Legal only on the follow-up step.
func (m Machine) ToggleFollowup(label string) Machine {
	if m.Step != StepFollowup {
		return m
	}
	m.Draft = m.Draft.ToggleFollowup(label)
	return m
}

// SetMessage edits the message on the details step.
func (m Machine) SetMessage(msg string) Machine {
	if m.Step != StepDetails {
		return m
	}
	m.Draft = m.Draft.SetMessage(msg)
	return m
}

// AppendSuggestion appends a suggestion chip to the message.
func (m Machine) AppendSuggestion(s string) Machine {
	if m.Step != StepDetails {
		return m
	}
	m.Draft = m.Draft.AppendSuggestion(s)
	return m
}

// SetEmail edits the reply address on the contact step.
func (m Machine) SetEmail(email string) Machine {
	if m.Step != StepContact {
		return m
	}
	m.Draft.Email = email
	return m
}

// SetName edits the optional name on the contact step.
func (m Machine) SetName(name string) Machine {
	if m.Step != StepContact {
		return m
	}
	m.Draft.Name = name
	return m
}

// NextFromReason advances past the reason step. Blocked while no reason is
// selected. Lands on the follow-up step only when at least one selected
// reason carries follow-ups, otherwise skips straight to details.
func (m Machine) NextFromReason() Machine {
	if m.Step != StepReason || !m.Draft.ReadyForDetails() {
		return m
	}
	if catalog.HasFollowups(m.Draft.Reasons) {
		m.Step = StepFollowup
	} else {
		m.Step = StepDetails
	}
	return m
}

// NextFromFollowup advances to details; follow-ups are optional, so there is
// no guard.
func (m Machine) NextFromFollowup() Machine {
	if m.Step != StepFollowup {
		return m
	}
	m.Step = StepDetails
	return m
}

// SubmitDetails advances to contact once the message is non-empty.
func (m Machine) SubmitDetails() Machine {
	if m.Step != StepDetails || !m.Draft.ReadyForContact() {
		return m
	}
	m.Step = StepContact
	return m
}

// Back returns to the previous step. The details step always backs into the
// follow-up step, even when it was skipped on the way forward.
func (m Machine) Back() Machine {
	switch m.Step {
	case StepFollowup:
		m.Step = StepReason
	case StepDetails:
		m.Step = StepFollowup
	case StepContact:
		m.Step = StepDetails
	}
	return m
}

// BeginSend starts the send once the email and message guards pass. While a
// send is in flight further BeginSend calls are ignored.
func (m Machine) BeginSend() Machine {
	if m.Step != StepContact || m.Sending || !m.Draft.ReadyToSend() {
		return m
	}
	m.Sending = true
	m.Err = ""
	return m
}

// SendSucceeded lands on the confirmation step.
func (m Machine) SendSucceeded() Machine {
	m.Sending = false
	m.Sent = true
	m.Err = ""
	m.Step = StepConfirm
	return m
}

// SendFailed keeps the user on the contact step with the error exposed; the
// draft is preserved so retry is just another BeginSend.
func (m Machine) SendFailed(errMsg string) Machine {
	m.Sending = false
	m.Err = errMsg
	return m
}

// Reset discards the draft and returns to the reason step. Legal from any
// step.
func (m Machine) Reset() Machine {
	m.Draft = draft.New()
	m.Step = StepReason
	m.Sending = false
	m.Sent = false
	m.Err = ""
	return m
}

// StartAnother begins a fresh submission after a confirmed send.
func (m Machine) StartAnother() Machine {
	if m.Step != StepConfirm {
		return m
	}
	return m.Reset()
}

// Escape closes the widget from any step while open.
func (m Machine) Escape() Machine {
	if !m.Open {
		return m
	}
	return m.Close()
}
