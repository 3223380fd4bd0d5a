package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
)

// DB owns the student and attendance collections for the process lifetime.
// A single RWMutex guards both collections so that cross-collection
// operations (the delete cascade, the mark-once check-then-append) are
// atomic with respect to each other.
type DB struct {
	mutex    sync.RWMutex
	students map[int]*student.Student
	lastID   int // ids derive from the last-appended id; gaps after deletion are not refilled
	entries  []attendance.Entry
}

func Open() (*DB, error) {
	db := &DB{
		students: make(map[int]*student.Student),
	}
	return db, nil
}
