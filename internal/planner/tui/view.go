package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tiertech/blueprint/internal/planner/catalog"
	"github.com/tiertech/blueprint/internal/planner/transport"
	"github.com/tiertech/blueprint/internal/planner/wizard"
)

func (m Model) View() string {
	if !m.machine.Open {
		return m.viewLauncher()
	}

	var body string
	switch m.machine.Step {
	case wizard.StepReason:
		body = m.viewReason()
	case wizard.StepFollowup:
		body = m.viewFollowup()
	case wizard.StepDetails:
		body = m.viewDetails()
	case wizard.StepContact:
		body = m.viewContact()
	case wizard.StepConfirm:
		body = m.viewConfirm()
	}

	header := headerStyle.Render("Blueprint Planner") + "\n" +
		subtitleStyle.Render("Quick chips → clear plan → send")
	return panelStyle.Render(header+"\n\n"+body) + "\n"
}

func (m Model) viewLauncher() string {
	style := launcherStyle
	label := "Blueprint Planner · press enter to chat"
	if m.nudging {
		style = launcherNudgeStyle
		label = "CLICK ME · Blueprint Planner · press enter to chat"
	}
	return style.Render(label) + "\n" + hintStyle.Render("enter: open · q: quit") + "\n"
}

func (m Model) viewReason() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("How can I help today?"))
	b.WriteString("\n\n")
	for i, r := range catalog.All() {
		b.WriteString(m.chipLine(i, r.Label, m.machine.Draft.HasReason(r.ID)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.machine.Draft.ReadyForDetails() {
		b.WriteString(hintStyle.Render("space: toggle · enter: next · ctrl+r: reset · esc: close"))
	} else {
		b.WriteString(hintStyle.Render("space: toggle (pick at least one) · ctrl+r: reset · esc: close"))
	}
	return b.String()
}

func (m Model) viewFollowup() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("Great — pick a few specifics (optional)"))
	b.WriteString("\n\n")
	for i, f := range m.machine.Draft.FollowupOptions() {
		b.WriteString(m.chipLine(i, f, m.machine.Draft.HasFollowup(f)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("space: toggle · enter: next · [: back · esc: close"))
	return b.String()
}

func (m Model) viewDetails() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("In a sentence or two, what outcome do you want?"))
	b.WriteString("\n\n")
	b.WriteString(m.message.View())
	b.WriteString("\n\n")
	chips := make([]string, 0, 4)
	for i, s := range catalog.Suggestions() {
		chips = append(chips, chipStyle.Render(fmt.Sprintf("alt+%d %s", i+1, s)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(chips, " ")))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter: next · ctrl+j: newline · ctrl+b: back · esc: close"))
	return b.String()
}

func (m Model) viewContact() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("Where should we reply?"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Email (required)"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Name (optional)"))
	b.WriteString("\n")
	b.WriteString(m.name.View())
	b.WriteString("\n\n")
	if m.machine.Sending {
		b.WriteString(sendingStyle.Render("Sending…"))
		b.WriteString("\n")
	} else {
		b.WriteString(hintStyle.Render("enter: send · tab: switch field · ctrl+b: back · esc: close"))
	}
	if m.machine.Err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.machine.Err))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("Fallback: " + transport.MailtoFallback(m.cfg.SupportAddress, m.machine.Draft)))
	}
	return b.String()
}

func (m Model) viewConfirm() string {
	d := m.machine.Draft
	var s strings.Builder
	s.WriteString(successStyle.Render("✅ Sent"))
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Reply to: "))
	s.WriteString(d.Email)
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Reasons: "))
	s.WriteString(orDash(strings.Join(catalog.Labels(d.Reasons), ", ")))
	s.WriteString("\n")
	if len(d.Followups) > 0 {
		s.WriteString(labelStyle.Render("Details: "))
		s.WriteString(strings.Join(d.Followups, ", "))
		s.WriteString("\n")
	}
	s.WriteString(labelStyle.Render("Message:"))
	s.WriteString("\n")
	s.WriteString(orDash(d.Message))

	var b strings.Builder
	b.WriteString(summaryStyle.Render(s.String()))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("enter: close · a: start another"))
	return b.String()
}

func (m Model) chipLine(i int, label string, active bool) string {
	cursor := "  "
	if i == m.cursor {
		cursor = chipCursorStyle.Render("▸ ")
	}
	chip := chipStyle
	if active {
		chip = chipActiveStyle
	}
	return cursor + chip.Render(fmt.Sprintf("%d %s", i+1, label))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
