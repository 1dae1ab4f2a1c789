// Package fields maps question text to the profile fields it asks about.
package fields

import (
	"strings"

	"HRPolicyGateway/internal/models"
)

var phrases = []struct {
	phrase string
	fields []models.Field
}{
	{"date of birth", []models.Field{models.FieldDOB}},
	{"dob", []models.Field{models.FieldDOB}},
	{"manager", []models.Field{models.FieldManager}},
	{"title", []models.Field{models.FieldTitle}},
	{"salary", []models.Field{models.FieldSalary}},
	{"pto", []models.Field{models.FieldPTOBalance}},
	{"pto balance", []models.Field{models.FieldPTOBalance}},
	{"years of service", []models.Field{models.FieldYears}},
}

// For returns the de-duplicated fields named by question in first-seen
// order. Overtime questions always need years of service.
func For(question string) []models.Field {
	q := strings.ToLower(question)

	out := make([]models.Field, 0, 4)
	seen := make(map[models.Field]struct{}, 4)
	add := func(f models.Field) {
		if _, ok := seen[f]; ok {
			return
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}

	for _, p := range phrases {
		if strings.Contains(q, p.phrase) {
			for _, f := range p.fields {
				add(f)
			}
		}
	}
	if strings.Contains(q, "overtime") {
		add(models.FieldYears)
	}
	return out
}
