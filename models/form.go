package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/vendor_briefing/config"
	"github.com/mmdatafocus/vendor_briefing/utils"
	"github.com/sirupsen/logrus"
)

// Form is the single mutation point for one session's record. List fields are only changed
// through its methods; scalar fields are assigned directly on Record().
type Form struct {
	sessionID string
	record    *ChecklistRecord
	// pageSeq is the last page number handed out; it only grows.
	pageSeq int
}

// NewForm starts a session with a default record.
func NewForm(now time.Time) *Form {
	return NewFormFromRecord(NewChecklistRecord(now))
}

// NewFormFromRecord wraps an existing record. An empty engineer list is topped up with one
// blank entry so the engineers invariant holds from the start.
func NewFormFromRecord(r *ChecklistRecord) *Form {
	if len(r.Engineers) == 0 {
		r.Engineers = []Engineer{{}}
	}
	f := &Form{
		sessionID: uuid.New().String(),
		record:    r,
	}
	for _, p := range r.AdditionalPages {
		var n int
		if _, err := fmt.Sscanf(p.ID, "page-%d", &n); err == nil && n > f.pageSeq {
			f.pageSeq = n
		}
	}
	return f
}

func (f *Form) SessionID() string {
	return f.sessionID
}

// Record exposes the live record for scalar field assignment.
func (f *Form) Record() *ChecklistRecord {
	return f.record
}

// Snapshot returns a deep copy safe to hand to a renderer.
func (f *Form) Snapshot() *ChecklistRecord {
	return f.record.Clone()
}

func (f *Form) logger() *logrus.Entry {
	return config.GetLogger().WithField("session_id", f.sessionID)
}

// Engineers

func (f *Form) AppendEngineer(e Engineer) {
	f.record.Engineers = append(f.record.Engineers, e)
}

// RemoveEngineer drops the engineer at index; removing the last remaining entry is rejected.
func (f *Form) RemoveEngineer(index int) error {
	if err := checkBounds("engineers", index, len(f.record.Engineers)); err != nil {
		return err
	}
	if len(f.record.Engineers) == 1 {
		return ErrLastEngineer
	}
	f.record.Engineers = slices.Delete(f.record.Engineers, index, index+1)
	return nil
}

// Additional pages

// AddPage appends a page and returns its id. Ids follow page-1, page-2, ... for the whole
// session and are never reused, even after a page is removed.
func (f *Form) AddPage(title string) string {
	var id string
	for {
		f.pageSeq++
		id = fmt.Sprintf("page-%d", f.pageSeq)
		if f.record.PageIndex(id) < 0 {
			break
		}
	}
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Additional Page %d", len(f.record.AdditionalPages)+1)
	}
	f.record.AdditionalPages = append(f.record.AdditionalPages, AdditionalPage{
		ID:            id,
		Title:         title,
		ContentBlocks: []string{},
		Questions:     []Question{},
	})
	f.logger().WithFields(logrus.Fields{"page_id": id, "title": title}).Debug("[form.addPage]")
	return id
}

func (f *Form) RemovePage(id string) error {
	i := f.record.PageIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	f.record.AdditionalPages = slices.Delete(f.record.AdditionalPages, i, i+1)
	return nil
}

// RenamePage sets a page title; blank titles are ignored.
func (f *Form) RenamePage(id, title string) error {
	page, err := f.page(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) != "" {
		page.Title = title
	}
	return nil
}

func (f *Form) AddQuestion(pageID string, q Question) error {
	page, err := f.page(pageID)
	if err != nil {
		return err
	}
	if err := q.check(); err != nil {
		return err
	}
	page.Questions = append(page.Questions, q.clone())
	return nil
}

func (f *Form) RemoveQuestion(pageID string, index int) error {
	page, err := f.page(pageID)
	if err != nil {
		return err
	}
	if err := checkBounds(pageID+".questions", index, len(page.Questions)); err != nil {
		return err
	}
	page.Questions = slices.Delete(page.Questions, index, index+1)
	return nil
}

// AnswerQuestion records an answer; its kind must match the question and choice answers may
// only name declared options. Duplicate checkbox selections collapse.
func (f *Form) AnswerQuestion(pageID string, index int, a Answer) error {
	page, err := f.page(pageID)
	if err != nil {
		return err
	}
	if err := checkBounds(pageID+".questions", index, len(page.Questions)); err != nil {
		return err
	}
	q := &page.Questions[index]
	if a.Kind != q.Kind {
		return ErrAnswerKindMismatch
	}
	switch a.Kind {
	case QuestionKindText:
		a.Selected = nil
	case QuestionKindCheckbox:
		a.Selected = utils.UniqueSlice(a.Selected)
		a.Text = ""
	case QuestionKindRadio:
		if len(a.Selected) != 1 {
			return fmt.Errorf("%w: radio questions take exactly one option", ErrUnknownOption)
		}
		a.Text = ""
	}
	if q.Kind.IsChoice() && !optionsDeclared(q.Options, a.Selected) {
		return ErrUnknownOption
	}
	q.Answer = &a
	return nil
}

// AddContent appends a text block; blank text is ignored.
func (f *Form) AddContent(pageID, text string) error {
	page, err := f.page(pageID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	page.ContentBlocks = append(page.ContentBlocks, text)
	return nil
}

func (f *Form) RemoveContent(pageID string, index int) error {
	page, err := f.page(pageID)
	if err != nil {
		return err
	}
	if err := checkBounds(pageID+".contentBlocks", index, len(page.ContentBlocks)); err != nil {
		return err
	}
	page.ContentBlocks = slices.Delete(page.ContentBlocks, index, index+1)
	return nil
}

func (f *Form) page(id string) (*AdditionalPage, error) {
	i := f.record.PageIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	return &f.record.AdditionalPages[i], nil
}
