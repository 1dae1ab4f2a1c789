package models

// Field names a structured profile attribute.
type Field string

const (
	FieldYears      Field = "years"
	FieldDOB        Field = "dob"
	FieldTitle      Field = "title"
	FieldManager    Field = "manager"
	FieldSalary     Field = "salary"
	FieldPTOBalance Field = "pto_balance"
)

// Sensitivity decides which callers may see a field.
type Sensitivity int

const (
	SensitivityPublic Sensitivity = iota
	SensitivityRestricted
	SensitivitySensitive
)

func (s Sensitivity) String() string {
	switch s {
	case SensitivityPublic:
		return "public"
	case SensitivityRestricted:
		return "restricted"
	case SensitivitySensitive:
		return "sensitive"
	}
	return "unknown"
}

// ProfileFields lists every profile field in display order.
var ProfileFields = []Field{
	FieldYears,
	FieldTitle,
	FieldManager,
	FieldPTOBalance,
	FieldDOB,
	FieldSalary,
}

// SensitivityOf returns the declared class of a field. ok is false for names
// that are not profile fields.
func SensitivityOf(f Field) (s Sensitivity, ok bool) {
	switch f {
	case FieldYears, FieldTitle, FieldManager, FieldPTOBalance:
		return SensitivityRestricted, true
	case FieldDOB, FieldSalary:
		return SensitivitySensitive, true
	}
	return 0, false
}

// Profile is the immutable HR record of one subject. Nil pointers mean the
// value is not on file.
type Profile struct {
	User       string   `yaml:"user" json:"user"`
	Years      *float64 `yaml:"years" json:"years,omitempty"`
	DOB        *string  `yaml:"dob" json:"dob,omitempty"`
	Title      *string  `yaml:"title" json:"title,omitempty"`
	Manager    *string  `yaml:"manager" json:"manager,omitempty"`
	Salary     *int64   `yaml:"salary" json:"salary,omitempty"`
	PTOBalance *int     `yaml:"pto_balance" json:"pto_balance,omitempty"`
}

// Value returns the stored value of f.
func (p Profile) Value(f Field) (any, bool) {
	switch f {
	case FieldYears:
		if p.Years != nil {
			return *p.Years, true
		}
	case FieldDOB:
		if p.DOB != nil {
			return *p.DOB, true
		}
	case FieldTitle:
		if p.Title != nil {
			return *p.Title, true
		}
	case FieldManager:
		if p.Manager != nil {
			return *p.Manager, true
		}
	case FieldSalary:
		if p.Salary != nil {
			return *p.Salary, true
		}
	case FieldPTOBalance:
		if p.PTOBalance != nil {
			return *p.PTOBalance, true
		}
	}
	return nil, false
}
