package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

const (
	// StatusPresent is the default status when the caller supplies none.
	StatusPresent = "Present"

	// DateLayout is the calendar-date key granularity for attendance.
	DateLayout = "2006-01-02"
)

// Entry is an immutable mark that a student was present/absent on a given
// calendar day. Date is derived from Timestamp's UTC day.
type Entry struct {
	StudentID int       `json:"student_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"` // UTC
	Date      string    `json:"date"`
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// MarkRequest contains information needed to mark a student's attendance.
type MarkRequest struct {
	StudentID int    `json:"student_id" validate:"required"`
	Status    string `json:"status"`
}

func (mr *MarkRequest) Validate(validate *validator.Validate) error {
	mr.Status = core.CleanString(mr.Status)
	return validate.Struct(mr)
}

// QueryFilter narrows the attendance list.
type QueryFilter struct {
	Date      string // exact match
	StudentID *int   // exact match
}

func (f QueryFilter) Match(e Entry) bool {
	if f.Date != "" && e.Date != f.Date {
		return false
	}
	if f.StudentID != nil && e.StudentID != *f.StudentID {
		return false
	}
	return true
}

// Status reports a student's state for the current day. It is a read-only
// projection of the entry list, not separate state.
type Status struct {
	Marked bool   `json:"marked"`
	Entry  *Entry `json:"entry,omitempty"`
}
