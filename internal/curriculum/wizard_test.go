package curriculum

import "testing"

func TestWizard_FullFlow(t *testing.T) {
	w := NewWizard()

	d := w.Begin("Linear Algebra")
	if d.State != StateInput {
		t.Fatalf("expected input state, got %q", d.State)
	}

	d, err := w.Propose(d.ID, []string{"Vectors", "Matrices"})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if d.State != StateChaptersProposed {
		t.Fatalf("expected chapters-proposed state, got %q", d.State)
	}

	if err := d.ValidateSelection([]string{"Matrices"}); err != nil {
		t.Fatalf("valid selection rejected: %v", err)
	}

	w.Complete(d.ID)
	if _, err := w.Get(d.ID); err == nil {
		t.Fatal("expected completed draft to be gone")
	}
}

func TestWizard_SelectionMustComeFromProposal(t *testing.T) {
	w := NewWizard()
	d := w.Begin("Linear Algebra")
	if _, err := w.Propose(d.ID, []string{"Vectors"}); err != nil {
		t.Fatalf("propose: %v", err)
	}

	if err := d.ValidateSelection([]string{"Determinants"}); err == nil {
		t.Fatal("expected unproposed chapter to be rejected")
	}
	if err := d.ValidateSelection(nil); err == nil {
		t.Fatal("expected empty selection to be rejected")
	}
}

func TestWizard_SelectionBeforeProposalRejected(t *testing.T) {
	w := NewWizard()
	d := w.Begin("Linear Algebra")

	if err := d.ValidateSelection([]string{"Vectors"}); err == nil {
		t.Fatal("expected selection in input state to be rejected")
	}
}

func TestWizard_ProposalRetainedAfterFailedCreate(t *testing.T) {
	// A failed lesson generation must not lose the proposal: the draft
	// stays in chapters-proposed and the same selection can be retried.
	w := NewWizard()
	d := w.Begin("Linear Algebra")
	if _, err := w.Propose(d.ID, []string{"Vectors", "Matrices"}); err != nil {
		t.Fatalf("propose: %v", err)
	}

	again, err := w.Get(d.ID)
	if err != nil {
		t.Fatalf("get after failed create: %v", err)
	}
	if again.State != StateChaptersProposed || len(again.Proposed) != 2 {
		t.Fatalf("proposal not retained: %+v", again)
	}
}

func TestWizard_UnknownDraft(t *testing.T) {
	w := NewWizard()
	if _, err := w.Propose("nope", []string{"A"}); err == nil {
		t.Fatal("expected error for unknown draft")
	}
	if _, err := w.Get("nope"); err == nil {
		t.Fatal("expected error for unknown draft")
	}
}
