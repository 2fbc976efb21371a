package models

import (
	"errors"
)

type QuestionKind string

const (
	QuestionKindText     QuestionKind = "text"
	QuestionKindCheckbox QuestionKind = "checkbox"
	QuestionKindRadio    QuestionKind = "radio"
)

// IsChoice reports whether answers are picked from a declared option list.
func (k QuestionKind) IsChoice() bool {
	switch k {
	case QuestionKindCheckbox, QuestionKindRadio:
		return true
	case QuestionKindText:
		return false
	}
	return false
}

func (k QuestionKind) IsValid() bool {
	switch k {
	case QuestionKindText, QuestionKindCheckbox, QuestionKindRadio:
		return true
	}
	return false
}

func (k QuestionKind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}

// convert input to enum type
func (k *QuestionKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "text":
		*k = QuestionKindText
	case "checkbox":
		*k = QuestionKindCheckbox
	case "radio":
		*k = QuestionKindRadio
	default:
		return errors.New("invalid question kind")
	}
	return nil
}

type SignatureMethod string

const (
	SignatureMethodDrawn    SignatureMethod = "drawn"
	SignatureMethodUploaded SignatureMethod = "uploaded"
)

func (m SignatureMethod) IsValid() bool {
	return m == SignatureMethodDrawn || m == SignatureMethodUploaded
}

func (m SignatureMethod) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

// accepts the short "draw"/"upload" spellings used by older form payloads
func (m *SignatureMethod) UnmarshalText(b []byte) error {
	switch string(b) {
	case "drawn", "draw":
		*m = SignatureMethodDrawn
	case "uploaded", "upload":
		*m = SignatureMethodUploaded
	default:
		return errors.New("invalid signature method")
	}
	return nil
}

// SectionKind identifies the built-in form sections plus the additional page tail.
type SectionKind int

const (
	SectionVendorInformation SectionKind = iota + 1
	SectionJobDetails
	SectionBriefing
	SectionChecklists
	SectionSignature
	SectionAdditionalPage
)

func (s SectionKind) String() string {
	switch s {
	case SectionVendorInformation:
		return "Vendor Information"
	case SectionJobDetails:
		return "Job Details"
	case SectionBriefing:
		return "Briefing"
	case SectionChecklists:
		return "Checklists"
	case SectionSignature:
		return "Signature"
	case SectionAdditionalPage:
		return "Additional Page"
	}
	return ""
}
