package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level problem, addressed by a JSON-style path such as
// "engineers[0].name".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationErrors lists every field-level problem found in a record.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Path+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByPath flattens the errors into path -> message, keeping the first message per path.
func (v ValidationErrors) ByPath() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		if _, ok := out[fe.Path]; !ok {
			out[fe.Path] = fe.Message
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterStructValidation(questionStructLevel, Question{})
	return v
}

func questionStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if q.Kind.IsChoice() && len(q.Options) == 0 {
		sl.ReportError(q.Options, "options", "Options", "options_required", "")
	}
	if q.Answer != nil {
		if q.Answer.Kind != q.Kind {
			sl.ReportError(q.Answer, "answer", "Answer", "answer_kind", "")
			return
		}
		if q.Kind.IsChoice() && !optionsDeclared(q.Options, q.Answer.Selected) {
			sl.ReportError(q.Answer, "answer", "Answer", "answer_option", "")
		}
		if q.Kind == QuestionKindRadio && len(q.Answer.Selected) > 1 {
			sl.ReportError(q.Answer, "answer", "Answer", "answer_single", "")
		}
	}
}

// messages for top-level fields, matching the inline hints shown next to the inputs
var fieldMessages = map[string]string{
	"vendorName":      "Vendor name is required",
	"equipment":       "Equipment is required",
	"referenceNumber": "MCM/SIM-T Number is required",
	"jobDescription":  "Job description is required",
	"engineers":       "At least one vendor engineer is required",
	"visitDate":       "Date of visit is required",
}

var tagMessages = map[string]string{
	"required":         "is required",
	"min":              "must not be empty",
	"oneof":            "must be one of: ",
	"unique":           "must have unique ids",
	"options_required": "at least one option is required for choice questions",
	"answer_kind":      "answer kind does not match question kind",
	"answer_option":    "answer selects an undeclared option",
	"answer_single":    "radio questions accept a single option",
}

// ValidateRecord checks the record structurally and returns it unchanged on success.
// The returned error is a ValidationErrors. It never mutates the record.
func ValidateRecord(r *ChecklistRecord) (*ChecklistRecord, error) {
	if r == nil {
		return nil, ValidationErrors{{Path: "", Message: "record is required"}}
	}
	err := validate.Struct(r)
	if err == nil {
		return r, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	return nil, toFieldErrors(verrs)
}

func toFieldErrors(verrs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(verrs))
	for _, ve := range verrs {
		path := ve.Namespace()
		// drop the root struct name
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, FieldError{Path: path, Message: messageFor(path, ve)})
	}
	return out
}

func messageFor(path string, ve validator.FieldError) string {
	if msg, ok := fieldMessages[path]; ok {
		return msg
	}
	if strings.HasSuffix(path, ".name") && strings.HasPrefix(path, "engineers[") {
		return "Name is required"
	}
	msg, ok := tagMessages[ve.Tag()]
	if !ok {
		return "is invalid (" + ve.Tag() + ")"
	}
	if ve.Tag() == "oneof" {
		msg += strings.ReplaceAll(ve.Param(), " ", ", ")
	}
	return msg
}

func optionsDeclared(options, selected []string) bool {
	for _, s := range selected {
		found := false
		for _, o := range options {
			if o == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
