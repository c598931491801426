package curriculum

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DraftState tracks where a course draft is in the creation flow.
type DraftState string

const (
	// StateInput: a course name exists but chapters are not proposed yet.
	StateInput DraftState = "input"

	// StateChaptersProposed: chapter titles were generated and are
	// waiting for the user's selection.
	StateChaptersProposed DraftState = "chapters-proposed"

	// StateCreated: the course was persisted; the draft is spent.
	StateCreated DraftState = "created"
)

// Draft is the explicit state object for the two-call course creation
// flow (propose chapters, then create with a selection). It carries the
// proposal between HTTP calls so a failed creation keeps the user's
// selection state.
type Draft struct {
	ID         string
	CourseName string
	State      DraftState
	Proposed   []string
	CreatedAt  time.Time
}

// Wizard holds in-flight course drafts. Drafts live in memory only; an
// abandoned draft costs one chapter generation to redo.
type Wizard struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

// NewWizard creates an empty wizard.
func NewWizard() *Wizard {
	return &Wizard{drafts: make(map[string]*Draft)}
}

// Begin starts a draft for the given course name.
func (w *Wizard) Begin(courseName string) *Draft {
	d := &Draft{
		ID:         uuid.NewString(),
		CourseName: courseName,
		State:      StateInput,
		CreatedAt:  time.Now(),
	}
	w.mu.Lock()
	w.drafts[d.ID] = d
	w.mu.Unlock()
	return d
}

// Propose records generated chapter titles on the draft and moves it to
// StateChaptersProposed.
func (w *Wizard) Propose(draftID string, chapters []string) (*Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, ok := w.drafts[draftID]
	if !ok {
		return nil, fmt.Errorf("unknown draft %q", draftID)
	}
	if d.State == StateCreated {
		return nil, fmt.Errorf("draft %q is already created", draftID)
	}

	d.Proposed = chapters
	d.State = StateChaptersProposed
	return d, nil
}

// Get returns the draft by ID.
func (w *Wizard) Get(draftID string) (*Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, ok := w.drafts[draftID]
	if !ok {
		return nil, fmt.Errorf("unknown draft %q", draftID)
	}
	return d, nil
}

// ValidateSelection checks that every selected title is one of the
// proposed chapters and that at least one was selected.
func (d *Draft) ValidateSelection(selected []string) error {
	if d.State != StateChaptersProposed {
		return fmt.Errorf("draft is in state %q, expected %q", d.State, StateChaptersProposed)
	}
	if len(selected) == 0 {
		return fmt.Errorf("select at least one chapter")
	}

	proposed := make(map[string]bool, len(d.Proposed))
	for _, p := range d.Proposed {
		proposed[normalizeTitle(p)] = true
	}
	for _, s := range selected {
		if !proposed[normalizeTitle(s)] {
			return fmt.Errorf("chapter %q was not proposed for this draft", s)
		}
	}
	return nil
}

// Complete marks the draft created and removes it from the wizard.
func (w *Wizard) Complete(draftID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if d, ok := w.drafts[draftID]; ok {
		d.State = StateCreated
		delete(w.drafts, draftID)
	}
}
