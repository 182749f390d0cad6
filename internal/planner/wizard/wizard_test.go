package wizard

import (
	"testing"

	"github.com/tiertech/blueprint/internal/planner/catalog"
	"github.com/tiertech/blueprint/internal/planner/draft"
)

func TestNextFromReasonBlockedWithoutSelection(t *testing.T) {
	m := New(draft.New()).Launch()
	m = m.NextFromReason()
	if m.Step != StepReason {
		t.Fatalf("expected to stay on reason, got %v", m.Step)
	}
}

func TestNextFromReasonGoesToFollowup(t *testing.T) {
	m := New(draft.New()).Launch()
	m = m.ToggleReason(catalog.ReasonQuote)
	m = m.NextFromReason()
	if m.Step != StepFollowup {
		t.Fatalf("quote has followups; expected followup, got %v", m.Step)
	}
}

func TestNextFromReasonSkipsFollowupWhenNoneAvailable(t *testing.T) {
	m := New(draft.New()).Launch()
	m = m.ToggleReason(catalog.ReasonOther)
	m = m.NextFromReason()
	if m.Step != StepDetails {
		t.Fatalf("other has no followups; expected details, got %v", m.Step)
	}
}

func TestMixedSelectionStillVisitsFollowup(t *testing.T) {
	m := New(draft.New()).Launch()
	m = m.ToggleReason(catalog.ReasonOther).ToggleReason(catalog.ReasonSupport)
	m = m.NextFromReason()
	if m.Step != StepFollowup {
		t.Fatalf("one reason with followups is enough, got %v", m.Step)
	}
}

func TestToggleIsStepGated(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonQuote).NextFromReason()
	before := len(m.Draft.Reasons)
	m = m.ToggleReason(catalog.ReasonSupport)
	if len(m.Draft.Reasons) != before {
		t.Fatalf("reason toggle must be a no-op off the reason step")
	}
	m = m.ToggleFollowup("ASAP")
	if !m.Draft.HasFollowup("ASAP") {
		t.Fatalf("followup toggle should work on the followup step")
	}
}

func TestSubmitDetailsGuardedOnMessage(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonOther).NextFromReason()
	m = m.SubmitDetails()
	if m.Step != StepDetails {
		t.Fatalf("empty message must block, got %v", m.Step)
	}
	m = m.SetMessage("a web app for onboarding")
	m = m.SubmitDetails()
	if m.Step != StepContact {
		t.Fatalf("expected contact, got %v", m.Step)
	}
}

func TestBackEdges(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonQuote).NextFromReason()
	m = m.NextFromFollowup().SetMessage("x").SubmitDetails()
	if m.Step != StepContact {
		t.Fatalf("setup failed, at %v", m.Step)
	}
	m = m.Back()
	if m.Step != StepDetails {
		t.Fatalf("contact backs to details, got %v", m.Step)
	}
	m = m.Back()
	if m.Step != StepFollowup {
		t.Fatalf("details backs to followup, got %v", m.Step)
	}
	m = m.Back()
	if m.Step != StepReason {
		t.Fatalf("followup backs to reason, got %v", m.Step)
	}
}

func TestDetailsBacksToFollowupEvenWhenSkipped(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonOther).NextFromReason()
	if m.Step != StepDetails {
		t.Fatalf("setup failed, at %v", m.Step)
	}
	if m = m.Back(); m.Step != StepFollowup {
		t.Fatalf("expected followup, got %v", m.Step)
	}
}

func TestSendLifecycle(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonOther).NextFromReason()
	m = m.SetMessage("hello").SubmitDetails().SetEmail("a@b.com")
	m = m.BeginSend()
	if !m.Sending {
		t.Fatalf("expected in-flight send")
	}
	// Re-entry is ignored while in flight.
	if again := m.BeginSend(); !again.Sending || again.Step != StepContact {
		t.Fatalf("re-entry should be a no-op")
	}
	ok := m.SendSucceeded()
	if ok.Step != StepConfirm || !ok.Sent || ok.Sending {
		t.Fatalf("unexpected post-success state %+v", ok)
	}
	failed := m.SendFailed("Request failed (500)")
	if failed.Step != StepContact || failed.Err == "" || failed.Sending {
		t.Fatalf("failure must stay on contact with the error, got %+v", failed)
	}
	if failed.Draft.Message != "hello" {
		t.Fatalf("draft must survive a failed send")
	}
}

func TestBeginSendGuards(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonOther).NextFromReason()
	m = m.SetMessage("hello").SubmitDetails()
	if m = m.BeginSend(); m.Sending {
		t.Fatalf("missing email must block send")
	}
}

func TestResetFromAnywhere(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonQuote).NextFromReason()
	m = m.ToggleFollowup("ASAP").NextFromFollowup().SetMessage("x").SubmitDetails()
	m = m.Reset()
	if m.Step != StepReason || len(m.Draft.Reasons) != 0 || m.Draft.Message != "" {
		t.Fatalf("reset should empty the draft, got %+v", m)
	}
	if !m.Open {
		t.Fatalf("reset does not close the widget")
	}
}

func TestStartAnotherOnlyFromConfirm(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonOther).NextFromReason()
	if got := m.StartAnother(); got.Step != StepDetails {
		t.Fatalf("start another off confirm is a no-op")
	}
	m = m.SetMessage("x").SubmitDetails().SetEmail("a@b.com").BeginSend().SendSucceeded()
	m = m.StartAnother()
	if m.Step != StepReason || m.Sent || len(m.Draft.Reasons) != 0 {
		t.Fatalf("expected fresh machine, got %+v", m)
	}
}

func TestEscapeClosesWithoutChangingStep(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonQuote).NextFromReason()
	m = m.Escape()
	if m.Open {
		t.Fatalf("escape should close")
	}
	if m.Step != StepFollowup {
		t.Fatalf("step must survive close, got %v", m.Step)
	}
	// Escape while closed is a no-op.
	if got := m.Escape(); got.Open {
		t.Fatalf("still closed")
	}
	if m = m.Launch(); m.Step != StepFollowup {
		t.Fatalf("reopen resumes the step")
	}
}

func TestCloseFromConfirmKeepsConfirm(t *testing.T) {
	m := New(draft.New()).Launch().ToggleReason(catalog.ReasonOther).NextFromReason()
	m = m.SetMessage("x").SubmitDetails().SetEmail("a@b.com").BeginSend().SendSucceeded()
	m = m.Close()
	if m.Open || m.Step != StepConfirm {
		t.Fatalf("close keeps the confirm step, got %+v", m)
	}
}
