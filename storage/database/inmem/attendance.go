package inmemdb

import "github.com/trezcool/darasa/core/attendance"

type attendanceRepository struct {
	db *DB
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) InsertEntryIfAbsent(e attendance.Entry) (attendance.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, cur := range repo.db.entries {
		if cur.StudentID == e.StudentID && cur.Date == e.Date {
			return attendance.Entry{}, attendance.ErrAlreadyMarked
		}
	}
	repo.db.entries = append(repo.db.entries, e)
	return e, nil
}

func (repo *attendanceRepository) FilterEntries(filter attendance.QueryFilter) ([]attendance.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]attendance.Entry, 0)
	for _, e := range repo.db.entries {
		if filter.Match(e) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (repo *attendanceRepository) DeleteEntriesByDate(date string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	kept := make([]attendance.Entry, 0, len(repo.db.entries))
	for _, e := range repo.db.entries {
		if e.Date != date {
			kept = append(kept, e)
		}
	}
	removed := len(repo.db.entries) - len(kept)
	repo.db.entries = kept
	return removed, nil
}
