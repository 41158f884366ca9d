package importer

import (
	"fmt"
	"time"

	"ganttlane/internal/domain"
)

// ValidateBoardImport checks the import file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateBoardImport(board *BoardImport) []error {
	var errs []error

	if len(board.Items) == 0 {
		errs = append(errs, fmt.Errorf("items: at least one item is required"))
	}

	for i, it := range board.Items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if it.Kind != "" && !domain.ValidItemKinds[it.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, it.Kind))
		}

		start, startErrs := validateDate(prefix+".start", it.Start)
		errs = append(errs, startErrs...)
		due, dueErrs := validateDate(prefix+".due", it.Due)
		errs = append(errs, dueErrs...)

		if start != nil && due != nil && due.Before(*start) {
			errs = append(errs, fmt.Errorf("%s: due %q is before start %q", prefix, it.Due, it.Start))
		}
	}

	return errs
}

func validateDate(field, s string) (*time.Time, []error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)}
	}
	return &t, nil
}
