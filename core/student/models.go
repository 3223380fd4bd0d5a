package student

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Student struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Grade   int    `json:"grade"`
	Section string `json:"section"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name    string `json:"name" validate:"required"`
	Grade   *int   `json:"grade" validate:"required"`
	Section string `json:"section" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Section = core.CleanString(ns.Section)
	return validate.Struct(ns)
}

// UpdateStudent contains fields to update on an existing Student.
// Omitted fields retain their prior values.
type UpdateStudent struct {
	Name    string `json:"name"`
	Grade   *int   `json:"grade"`
	Section string `json:"section"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Section = core.CleanString(us.Section)
	return validate.Struct(us)
}

// QueryFilter narrows the student list. Each set field is an independent
// narrowing pass; all set fields must match (logical AND).
type QueryFilter struct {
	Name    string // case-insensitive substring match
	Grade   *int   // exact match
	Section string // case-insensitive exact match
}

func (f QueryFilter) Match(st Student) bool {
	if f.Name != "" && !strings.Contains(core.CleanString(st.Name, true), core.CleanString(f.Name, true)) {
		return false
	}
	if f.Grade != nil && st.Grade != *f.Grade {
		return false
	}
	if f.Section != "" && core.CleanString(st.Section, true) != core.CleanString(f.Section, true) {
		return false
	}
	return true
}
