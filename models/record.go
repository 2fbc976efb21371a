package models

import (
	"slices"
	"strings"
	"time"
)

// ChecklistRecord holds everything entered during one briefing session.
type ChecklistRecord struct {
	VendorName      string           `json:"vendorName" validate:"required"`
	Equipment       string           `json:"equipment" validate:"required"`
	ReferenceNumber string           `json:"referenceNumber" validate:"required"`
	JobDescription  string           `json:"jobDescription" validate:"required"`
	Engineers       []Engineer       `json:"engineers" validate:"required,min=1,dive"`
	VisitDate       time.Time        `json:"visitDate" validate:"required"`
	PreBrief        string           `json:"preBrief,omitempty"`
	PostBrief       string           `json:"postBrief,omitempty"`
	Checklists      ChecklistGroups  `json:"checklists"`
	AdditionalPages []AdditionalPage `json:"additionalPages" validate:"unique=ID,dive"`
	Signature       Signature        `json:"signature"`
}

type Engineer struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role,omitempty"`
}

type ChecklistGroups struct {
	Security   SecurityChecklist   `json:"security"`
	Safety     SafetyChecklist     `json:"safety"`
	Process    ProcessChecklist    `json:"process"`
	Escalation EscalationChecklist `json:"escalation"`
}

type SecurityChecklist struct {
	IdentityVerified         bool `json:"identityVerified"`
	AccessArrangements       bool `json:"accessArrangements"`
	CameraApproval           bool `json:"cameraApproval"`
	EscortArrangements       bool `json:"escortArrangements"`
	ConfidentialityAgreement bool `json:"confidentialityAgreement"`
}

type SafetyChecklist struct {
	SiteInduction       bool `json:"siteInduction"`
	EmergencyProcedures bool `json:"emergencyProcedures"`
	FirstAid            bool `json:"firstAid"`
	PPE                 bool `json:"ppe"`
	Hazards             bool `json:"hazards"`
	Reporting           bool `json:"reporting"`
	EvacuationRoutes    bool `json:"evacuationRoutes"`
}

type ProcessChecklist struct {
	Workscope           bool `json:"workscope"`
	Boundaries          bool `json:"boundaries"`
	QualityExpectations bool `json:"qualityExpectations"`
	AcceptanceCriteria  bool `json:"acceptanceCriteria"`
}

type EscalationChecklist struct {
	Chain bool `json:"chain"`
}

// AdditionalPage is a user-created step with free text blocks and custom questions.
type AdditionalPage struct {
	ID            string     `json:"id" validate:"required"`
	Title         string     `json:"title"`
	ContentBlocks []string   `json:"contentBlocks"`
	Questions     []Question `json:"questions" validate:"dive"`
}

type Question struct {
	Text    string       `json:"text" validate:"required"`
	Kind    QuestionKind `json:"kind" validate:"oneof=text checkbox radio"`
	Options []string     `json:"options,omitempty"`
	Answer  *Answer      `json:"answer,omitempty"`
}

// Answer is a tagged value: Text is used by text questions, Selected by choice questions
// (radio answers select exactly one option).
type Answer struct {
	Kind     QuestionKind `json:"kind"`
	Text     string       `json:"text,omitempty"`
	Selected []string     `json:"selected,omitempty"`
}

func TextAnswer(text string) Answer {
	return Answer{Kind: QuestionKindText, Text: text}
}

func CheckboxAnswer(selected ...string) Answer {
	return Answer{Kind: QuestionKindCheckbox, Selected: selected}
}

func RadioAnswer(option string) Answer {
	return Answer{Kind: QuestionKindRadio, Selected: []string{option}}
}

type Signature struct {
	Method    SignatureMethod `json:"method" validate:"oneof=drawn uploaded"`
	ImageData []byte          `json:"imageData,omitempty"`
}

// NewChecklistRecord returns the defaults a session starts with.
func NewChecklistRecord(now time.Time) *ChecklistRecord {
	return &ChecklistRecord{
		Engineers:       []Engineer{{}},
		VisitDate:       now,
		AdditionalPages: []AdditionalPage{},
		Signature:       Signature{Method: SignatureMethodDrawn},
	}
}

// NewQuestion builds a question, rejecting choice kinds without options.
func NewQuestion(text string, kind QuestionKind, options ...string) (Question, error) {
	q := Question{Text: text, Kind: kind, Options: options}
	if err := q.check(); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (q Question) check() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrBlankQuestion
	}
	if !q.Kind.IsValid() {
		return ErrInvalidQuestionKind
	}
	if q.Kind.IsChoice() && len(q.Options) == 0 {
		return ErrOptionsRequired
	}
	return nil
}

// IsComplete reports whether the record validates and carries a signature image.
func (r *ChecklistRecord) IsComplete() bool {
	if _, err := ValidateRecord(r); err != nil {
		return false
	}
	return len(r.Signature.ImageData) > 0
}

// PageIndex returns the position of the page with the given id, or -1.
func (r *ChecklistRecord) PageIndex(id string) int {
	return slices.IndexFunc(r.AdditionalPages, func(p AdditionalPage) bool { return p.ID == id })
}

// Clone returns a deep copy; renderers work on clones so later edits cannot leak in.
func (r *ChecklistRecord) Clone() *ChecklistRecord {
	c := *r
	c.Engineers = slices.Clone(r.Engineers)
	c.Signature.ImageData = slices.Clone(r.Signature.ImageData)
	if r.AdditionalPages != nil {
		c.AdditionalPages = make([]AdditionalPage, len(r.AdditionalPages))
		for i, p := range r.AdditionalPages {
			c.AdditionalPages[i] = p.clone()
		}
	}
	return &c
}

func (p AdditionalPage) clone() AdditionalPage {
	c := p
	c.ContentBlocks = slices.Clone(p.ContentBlocks)
	if p.Questions != nil {
		c.Questions = make([]Question, len(p.Questions))
		for i, q := range p.Questions {
			c.Questions[i] = q.clone()
		}
	}
	return c
}

func (q Question) clone() Question {
	c := q
	c.Options = slices.Clone(q.Options)
	if q.Answer != nil {
		a := *q.Answer
		a.Selected = slices.Clone(q.Answer.Selected)
		c.Answer = &a
	}
	return c
}
