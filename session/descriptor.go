// Package session holds the per-session state of a coaching interview: the
// prepared descriptor, its progress counters and the ordered transcript.
package session

import (
	"fmt"
	"sync"
)

// Mode governs whether feedback is interleaved per question or deferred to a
// final debrief.
type Mode string

const (
	ModeQuestionByQuestion Mode = "question_by_question"
	ModeFullInterview      Mode = "full_interview"
)

// ParseMode validates a mode coming from the outside world.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeQuestionByQuestion, ModeFullInterview:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode %q", s)
	}
}

// Progress is a point-in-time copy of the mutable progress fields.
type Progress struct {
	PresentationDone  bool   `json:"presentation_done"`
	QuestionsAnswered int    `json:"questions_answered"`
	CurrentQuestion   string `json:"current_question,omitempty"`
}

// Descriptor is the configuration of one session. ID, Mode, DossierText and
// Questions are fixed at creation; the progress fields are guarded and only
// reachable through methods.
type Descriptor struct {
	ID          string
	Mode        Mode
	DossierText string
	Questions   []string

	mu       sync.RWMutex
	progress Progress
}

// NewDescriptor creates a descriptor without an id. The id is assigned by the
// PendingStore when the session is prepared.
func NewDescriptor(mode Mode, dossierText string, questions []string) *Descriptor {
	qs := make([]string, len(questions))
	copy(qs, questions)
	return &Descriptor{
		Mode:        mode,
		DossierText: dossierText,
		Questions:   qs,
	}
}

// Progress returns a copy of the current progress counters.
func (d *Descriptor) Progress() Progress {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.progress
}

// MarkPresentationDone records that the candidate finished the opening
// presentation. It reports whether this call changed the state.
func (d *Descriptor) MarkPresentationDone() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.progress.PresentationDone {
		return false
	}
	d.progress.PresentationDone = true
	return true
}

// SetCurrentQuestion records the prompt the candidate is expected to answer.
func (d *Descriptor) SetCurrentQuestion(q string) {
	d.mu.Lock()
	d.progress.CurrentQuestion = q
	d.mu.Unlock()
}

// AnswerCurrentQuestion counts an answer to the current question and clears
// it. Nothing is counted when no question is pending.
func (d *Descriptor) AnswerCurrentQuestion() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.progress.CurrentQuestion == "" {
		return false
	}
	d.progress.QuestionsAnswered++
	d.progress.CurrentQuestion = ""
	return true
}
