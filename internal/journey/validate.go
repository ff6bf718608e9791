package journey

import (
	"fmt"
	"strings"

	"claimflow/internal/answers"
	"claimflow/pkg/domain"
)

// FieldError is one claimant-facing validation message.
type FieldError struct {
	Attribute answers.Attribute
	Message   string
}

// ValidationError collects the field errors for one submission context.
// It is recoverable: the caller re-renders the form with the messages.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = string(f.Attribute)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, ", "))
}

func requiredMessage(p Page, a answers.Attribute) string {
	if msg, ok := p.Messages[a]; ok {
		return msg
	}
	return "Select an answer to continue"
}

// ValidatePage checks the page-level context: every attribute the page
// asks for must be present after the submission was applied.
func (s *Sequence) ValidatePage(slug domain.Slug, snap answers.Snapshot) *ValidationError {
	p, ok := s.bySlug[slug]
	if !ok {
		return nil
	}
	var fields []FieldError
	for _, a := range p.Attributes {
		if !snap.Present(a) {
			fields = append(fields, FieldError{Attribute: a, Message: requiredMessage(p, a)})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ValidateSubmit checks the final-submission context: every question page
// in the current sequence must be fully answered. Page-only requirements
// (conditional pages that fell out of the sequence) are not re-imposed.
func (s *Sequence) ValidateSubmit(ctx Context) *ValidationError {
	var fields []FieldError
	for _, slug := range s.Slugs(ctx) {
		p, ok := s.bySlug[slug]
		if !ok {
			continue
		}
		for _, a := range p.Attributes {
			if !ctx.Snapshot.Present(a) {
				fields = append(fields, FieldError{Attribute: a, Message: requiredMessage(p, a)})
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
