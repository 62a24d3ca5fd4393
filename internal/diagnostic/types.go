package diagnostic

import (
	"slices"
	"strings"

	"modelkit/internal/common"
)

// Diagnostics collects the findings of one declaration check or resolution,
// split by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding.
type Diagnostic struct {
	Severity DiagnosticSeverity
	// Code is a stable snake_case identifier, e.g. "unknown_property".
	Code    string
	Message string
	// Model and Property locate the finding; both may be empty.
	Model    string
	Property string
	// Suggestions are "did you mean" candidates.
	Suggestions []string
}

// DiagnosticSeverity orders findings from informational to fatal.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError records a finding that blocks generation.
func (d *Diagnostics) AddError(code, message, model, property string) {
	d.add(DiagnosticError, code, message, model, property)
}

// AddWarning records a finding that generation works around, such as a
// skipped field.
func (d *Diagnostics) AddWarning(code, message, model, property string) {
	d.add(DiagnosticWarning, code, message, model, property)
}

// AddInfo records a noteworthy but expected situation.
func (d *Diagnostics) AddInfo(code, message, model, property string) {
	d.add(DiagnosticInfo, code, message, model, property)
}

func (d *Diagnostics) add(severity DiagnosticSeverity, code, message, model, property string) {
	list := d.list(severity)
	*list = append(*list, Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Model:    model,
		Property: property,
	})
}

// Suggest attaches suggestions to the most recently added diagnostic of the
// given severity. It does nothing when there is none.
func (d *Diagnostics) Suggest(severity DiagnosticSeverity, suggestions ...string) {
	list := *d.list(severity)
	if len(list) == 0 {
		return
	}

	last := &list[len(list)-1]
	last.Suggestions = append(last.Suggestions, suggestions...)
}

func (d *Diagnostics) list(severity DiagnosticSeverity) *[]Diagnostic {
	switch severity {
	case DiagnosticError:
		return &d.Errors
	case DiagnosticWarning:
		return &d.Warnings
	default:
		return &d.Infos
	}
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	return slices.Concat(d.Errors, d.Warnings, d.Infos)
}

// Merge appends the findings of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// HasErrors reports whether any error was recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid is the negation of HasErrors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns the recorded errors as an *Error, or nil when there are
// none.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	return &Error{Diagnostics: slices.Clone(d.Errors)}
}

// Error carries error diagnostics through an error chain. Use errors.As to
// get at the individual findings.
type Error struct {
	Diagnostics []Diagnostic
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}

	return strings.Join(parts, "; ")
}

// String formats the diagnostic as "[Model] property: [code] message (did
// you mean x?)", leaving out the parts that are empty.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Model != "" {
		b.WriteString("[" + d.Model + "]")
	}

	if d.Property != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}

		b.WriteString(d.Property)
	}

	if b.Len() > 0 {
		b.WriteString(": ")
	}

	if d.Code != "" {
		b.WriteString("[" + d.Code + "] ")
	}

	b.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(d.Suggestions, ", ") + "?)")
	}

	return b.String()
}
