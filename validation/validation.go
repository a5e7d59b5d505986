// Package validation collects per-field violations for form submissions.
// Violation values are i18n message codes, translated at render time.
package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Has reports whether a field has a violation.
func (v Violations) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Required flags the field when the value is blank.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// PositiveFloat flags the field when the value is not strictly positive.
func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

// OneOf flags the field when the value is not in the allowed set.
// Blank values are skipped; combine with Required when the field is mandatory.
func OneOf(field, value string, allowed []string, v Violations) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "out_of_range"
}
