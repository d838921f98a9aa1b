package domain

import "testing"

func TestNotificationRender(t *testing.T) {
	division := DivisionOwner
	n := Notification{Division: &division, Message: "Project {projectName} has a new offer awaiting approval."}

	got := n.Render("Rumah Tipe 45")
	want := "Project Rumah Tipe 45 has a new offer awaiting approval."
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestNotificationRender_NoPlaceholder(t *testing.T) {
	n := Notification{Message: "static message"}
	if got := n.Render("anything"); got != "static message" {
		t.Errorf("Render = %q, want unchanged message", got)
	}
}

func TestStepIsTerminal(t *testing.T) {
	terminal := Step{StepName: "Completed", Status: "Completed", Progress: 100}
	if !terminal.IsTerminal() {
		t.Error("Step without transitions should be terminal")
	}

	active := Step{
		StepName: "Offer", Status: "Pending Offer", Progress: 10,
		Transitions: map[string]Transition{"submitted": {TargetStatus: "Pending Approval", TargetProgress: 20}},
	}
	if active.IsTerminal() {
		t.Error("Step with transitions should not be terminal")
	}
}
