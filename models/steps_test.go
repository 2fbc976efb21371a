package models

import (
	"testing"
	"time"
)

func TestStepSequencer_Boundaries(t *testing.T) {
	s := NewStepSequencer(NewForm(time.Now()))
	s.Prev()
	if s.CurrentStep() != 1 {
		t.Fatalf("expected prev at step 1 to be a no-op, got %d", s.CurrentStep())
	}
	for i := 0; i < 10; i++ {
		s.Next()
	}
	if s.CurrentStep() != 5 {
		t.Fatalf("expected to stop at step 5, got %d", s.CurrentStep())
	}
	if !s.IsLast() {
		t.Fatalf("expected IsLast at step 5")
	}
	s.Next()
	if s.CurrentStep() != 5 {
		t.Fatalf("expected next at last step to be a no-op, got %d", s.CurrentStep())
	}
}

func TestStepSequencer_TotalTracksPages(t *testing.T) {
	f := NewForm(time.Now())
	s := NewStepSequencer(f)
	for i := 1; i <= 4; i++ {
		f.AddPage("")
		if s.TotalSteps() != 5+i {
			t.Fatalf("expected %d total steps, got %d", 5+i, s.TotalSteps())
		}
	}
}

func TestStepSequencer_AddPageKeepsCurrent(t *testing.T) {
	f := NewForm(time.Now())
	s := NewStepSequencer(f)
	for i := 0; i < 4; i++ {
		s.Next()
	}
	if s.CurrentStep() != 5 {
		t.Fatalf("expected step 5, got %d", s.CurrentStep())
	}
	id := f.AddPage("")
	if s.CurrentStep() != 5 {
		t.Fatalf("expected current step unchanged, got %d", s.CurrentStep())
	}
	s.Next()
	step := s.Current()
	if step.Number != 6 || step.Section != SectionAdditionalPage || step.PageID != id {
		t.Fatalf("expected additional page step 6 (%s), got %+v", id, step)
	}
	if s.Title() != "Additional Page 1" {
		t.Fatalf("expected title Additional Page 1, got %q", s.Title())
	}
}

func TestStepSequencer_SectionOrder(t *testing.T) {
	s := NewStepSequencer(NewForm(time.Now()))
	expected := []string{"Vendor Information", "Job Details", "Briefing", "Checklists", "Signature"}
	for i, title := range expected {
		if got := s.Title(); got != title {
			t.Fatalf("step %d expected %q, got %q", i+1, title, got)
		}
		s.Next()
	}
}

func TestStepSequencer_ClampsAfterPageRemoval(t *testing.T) {
	f := NewForm(time.Now())
	s := NewStepSequencer(f)
	id := f.AddPage("")
	for i := 0; i < 5; i++ {
		s.Next()
	}
	if s.CurrentStep() != 6 {
		t.Fatalf("expected step 6, got %d", s.CurrentStep())
	}
	if err := f.RemovePage(id); err != nil {
		t.Fatalf("RemovePage error: %v", err)
	}
	if s.CurrentStep() != 5 {
		t.Fatalf("expected clamp to 5, got %d", s.CurrentStep())
	}
}

func TestStepSequencer_Progress(t *testing.T) {
	s := NewStepSequencer(NewForm(time.Now()))
	if p := s.Progress(); p != 20 {
		t.Fatalf("expected 20%%, got %v", p)
	}
}
