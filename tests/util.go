package testutil

import (
	"testing"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

func CreateStudent(t *testing.T, repo student.Repository, name string, grade int, section string) student.Student {
	t.Helper()

	st, err := repo.CreateStudent(student.Student{Name: name, Grade: grade, Section: section})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

func MarkEntry(t *testing.T, repo attendance.Repository, studentID int, status string, at time.Time) attendance.Entry {
	t.Helper()

	at = at.UTC()
	entry, err := repo.InsertEntryIfAbsent(attendance.Entry{
		StudentID: studentID,
		Status:    status,
		Timestamp: at,
		Date:      attendance.DateOf(at),
	})
	if err != nil {
		t.Fatalf("MarkEntry() failed: %v", err)
	}
	return entry
}

// FixedClock always reports the same instant; tests advance it manually.
type FixedClock struct {
	T time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{T: t.UTC()}
}

func (c *FixedClock) Now() time.Time { return c.T }

func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// Logger records through the test runner.
type Logger struct {
	t *testing.T
}

var _ core.Logger = (*Logger)(nil)

func NewLogger(t *testing.T) *Logger { return &Logger{t: t} }

func (l *Logger) Enable(bool) {}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.t.Helper()
	l.t.Logf("%s: %s %v", level, msg, args)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }

