package models

import "fmt"

// BuiltInSteps is the number of fixed sections before the additional page tail.
const BuiltInSteps = 5

// Step is what the sequencer currently points at. PageID is only set for additional pages.
type Step struct {
	Number  int
	Section SectionKind
	PageID  string
}

// StepSequencer walks the form one step at a time. The step count is derived from the form
// on every call, so pages added mid-session extend the walk immediately.
type StepSequencer struct {
	form    *Form
	current int
}

func NewStepSequencer(f *Form) *StepSequencer {
	return &StepSequencer{form: f, current: 1}
}

func (s *StepSequencer) TotalSteps() int {
	return BuiltInSteps + len(s.form.record.AdditionalPages)
}

func (s *StepSequencer) CurrentStep() int {
	// pages may have been removed behind our back
	if total := s.TotalSteps(); s.current > total {
		s.current = total
	}
	return s.current
}

// Next advances one step; no-op on the last step.
func (s *StepSequencer) Next() {
	if s.CurrentStep() < s.TotalSteps() {
		s.current++
	}
}

// Prev goes back one step; no-op on the first step.
func (s *StepSequencer) Prev() {
	if s.CurrentStep() > 1 {
		s.current--
	}
}

func (s *StepSequencer) IsFirst() bool { return s.CurrentStep() == 1 }

func (s *StepSequencer) IsLast() bool { return s.CurrentStep() == s.TotalSteps() }

func (s *StepSequencer) Current() Step {
	n := s.CurrentStep()
	if n <= BuiltInSteps {
		return Step{Number: n, Section: SectionKind(n)}
	}
	page := s.form.record.AdditionalPages[n-BuiltInSteps-1]
	return Step{Number: n, Section: SectionAdditionalPage, PageID: page.ID}
}

// Title is the heading shown above the current step.
func (s *StepSequencer) Title() string {
	step := s.Current()
	if step.Section == SectionAdditionalPage {
		return fmt.Sprintf("Additional Page %d", step.Number-BuiltInSteps)
	}
	return step.Section.String()
}

// Progress is the completion percentage shown in the progress bar.
func (s *StepSequencer) Progress() float64 {
	return float64(s.CurrentStep()) / float64(s.TotalSteps()) * 100
}
