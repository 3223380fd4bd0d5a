package attendance

import (
	"errors"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

var (
	// errors
	ErrAlreadyMarked = errors.New("attendance already marked for this day")
)

type (
	Repository interface {
		// InsertEntryIfAbsent appends e unless an entry already exists for
		// (e.StudentID, e.Date), in which case it fails with ErrAlreadyMarked.
		// The existence check and the append are a single critical section.
		InsertEntryIfAbsent(e Entry) (Entry, error)
		// FilterEntries applies AND operation on available QueryFilter fields,
		// preserving insertion order.
		FilterEntries(filter QueryFilter) ([]Entry, error)
		// DeleteEntriesByDate removes all entries for the given date and
		// returns the number removed.
		DeleteEntriesByDate(date string) (int, error)
	}

	// StudentDirectory is the subset of the student repository the
	// attendance service needs to check that a student exists.
	StudentDirectory interface {
		GetStudentByID(id int) (student.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentDirectory
		clock    core.Clock
	}
)

func NewService(repo Repository, students StudentDirectory, clock core.Clock) *Service {
	return &Service{repo: repo, students: students, clock: clock}
}

// Mark records the given student as present (or as the supplied status) for
// the current calendar day. A student can only be marked once per day; a
// second call fails with ErrAlreadyMarked until the day is cleared or the
// next day starts.
func (svc *Service) Mark(studentID int, status string) (Entry, error) {
	if _, err := svc.students.GetStudentByID(studentID); err != nil {
		return Entry{}, err
	}

	if status = core.CleanString(status); status == "" {
		status = StatusPresent
	}
	now := svc.clock.Now().UTC()
	return svc.repo.InsertEntryIfAbsent(Entry{
		StudentID: studentID,
		Status:    status,
		Timestamp: now,
		Date:      DateOf(now),
	})
}

// Query returns the entries for the given date, optionally narrowed to a
// single student. An empty date defaults to today.
func (svc *Service) Query(date string, studentID *int) ([]Entry, error) {
	d, err := svc.ResolveDate(date)
	if err != nil {
		return nil, err
	}
	return svc.repo.FilterEntries(QueryFilter{Date: d, StudentID: studentID})
}

// ClearDay removes all entries for the given date (default today), resetting
// every student for that day back to unmarked. It returns the cleared count.
func (svc *Service) ClearDay(date string) (int, error) {
	d, err := svc.ResolveDate(date)
	if err != nil {
		return 0, err
	}
	return svc.repo.DeleteEntriesByDate(d)
}

// StatusFor reports whether the given student is marked for the current day.
func (svc *Service) StatusFor(studentID int) (Status, error) {
	if _, err := svc.students.GetStudentByID(studentID); err != nil {
		return Status{}, err
	}

	entries, err := svc.repo.FilterEntries(QueryFilter{
		Date:      DateOf(svc.clock.Now()),
		StudentID: &studentID,
	})
	if err != nil {
		return Status{}, err
	}
	if len(entries) == 0 {
		return Status{}, nil
	}
	return Status{Marked: true, Entry: &entries[0]}, nil
}

// ResolveDate normalizes a caller-supplied date, defaulting to today (UTC)
// when empty.
func (svc *Service) ResolveDate(date string) (string, error) {
	if date = core.CleanString(date); date == "" {
		return DateOf(svc.clock.Now()), nil
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", core.NewValidationError(nil, core.FieldError{Field: "date", Error: "must be a valid date in YYYY-MM-DD format"})
	}
	return t.Format(DateLayout), nil
}
