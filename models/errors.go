package models

import (
	"errors"
	"fmt"
)

var (
	ErrLastEngineer         = errors.New("at least one vendor engineer is required")
	ErrPageNotFound         = errors.New("additional page not found")
	ErrOptionsRequired      = errors.New("choice questions require at least one option")
	ErrBlankQuestion        = errors.New("question text is required")
	ErrInvalidQuestionKind  = errors.New("invalid question kind")
	ErrAnswerKindMismatch   = errors.New("answer kind does not match question kind")
	ErrUnknownOption        = errors.New("answer names an option the question does not declare")
	ErrUnknownChecklistItem = errors.New("unknown checklist item")
)

// ListBoundsError reports an index outside a list field. It marks a caller bug rather than
// something a user can trigger through the form.
type ListBoundsError struct {
	List  string
	Index int
	Len   int
}

func (e *ListBoundsError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.List, e.Index, e.Len)
}

func checkBounds(list string, index, length int) error {
	if index < 0 || index >= length {
		return &ListBoundsError{List: list, Index: index, Len: length}
	}
	return nil
}
