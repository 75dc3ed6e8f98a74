package importer

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/stickies/internal/domain"
)

// ValidationError collects every problem found in an import file.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(e.Errs))
	for _, err := range e.Errs {
		msg += "\n  - " + err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}

// ValidateImport checks parsed notes before conversion.
// Returns a slice of all validation errors found.
func ValidateImport(notes []NoteImport) []error {
	var errs []error
	seen := make(map[string]int)

	for i, n := range notes {
		field := fmt.Sprintf("notes[%d]", i)

		if !domain.HasText(n.Text) {
			errs = append(errs, fmt.Errorf("%s.text is required", field))
		}
		if n.Color != "" && !domain.Color(strings.ToLower(n.Color)).IsValid() {
			errs = append(errs, fmt.Errorf("%s.color: invalid value %q", field, n.Color))
		}
		if n.Position != nil {
			if !finite(n.Position.Top) || !finite(n.Position.Left) {
				errs = append(errs, fmt.Errorf("%s.position must be finite", field))
			}
		}
		if n.ID != "" {
			if first, dup := seen[n.ID]; dup {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q (first used by notes[%d])", field, n.ID, first))
			} else {
				seen[n.ID] = i
			}
		}
	}

	return errs
}

// Validate returns a *ValidationError when ValidateImport finds problems.
func Validate(notes []NoteImport) error {
	if errs := ValidateImport(notes); len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
