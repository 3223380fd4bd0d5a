package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/student"
)

type studentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

// query returns all students in insertion order. Ids are monotonic so
// ascending id order is insertion order, deletions included.
func (repo *studentRepository) query() []student.Student {
	studs := make([]student.Student, 0, len(repo.db.students))
	for _, st := range repo.db.students {
		studs = append(studs, *st)
	}
	sort.Slice(studs, func(i, j int) bool { return studs[i].ID < studs[j].ID })
	return studs
}

func (repo *studentRepository) CreateStudent(st student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.lastID++
	st.ID = repo.db.lastID
	repo.db.students[st.ID] = &st
	return st, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return *st, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) FilterStudents(filter student.QueryFilter) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	studs := make([]student.Student, 0)
	for _, st := range repo.query() {
		if filter.Match(st) {
			studs = append(studs, st)
		}
	}
	return studs, nil
}

func (repo *studentRepository) UpdateStudent(st student.Student, grade *int) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// only save set fields
	origSt, ok := repo.db.students[st.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	if st.Name != "" {
		origSt.Name = st.Name
	}
	if grade != nil {
		origSt.Grade = *grade
	}
	if st.Section != "" {
		origSt.Section = st.Section
	}
	return *origSt, nil
}

func (repo *studentRepository) DeleteStudent(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.students, id)

	// cascade: drop the student's attendance entries
	kept := repo.db.entries[:0]
	for _, e := range repo.db.entries {
		if e.StudentID != id {
			kept = append(kept, e)
		}
	}
	repo.db.entries = kept
	return nil
}
