package student

import (
	"errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound     = errors.New("student not found")
	ErrNameMismatch = errors.New("name does not match our records")
)

type (
	Repository interface {
		CreateStudent(st Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields,
		// preserving insertion order.
		FilterStudents(filter QueryFilter) ([]Student, error)
		// UpdateStudent only saves set fields; a nil grade retains the prior grade.
		UpdateStudent(st Student, grade *int) (Student, error)
		// DeleteStudent removes the student and all their attendance entries.
		DeleteStudent(id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	st := Student{
		Name:    core.CleanString(ns.Name),
		Section: core.CleanString(ns.Section),
	}
	if ns.Grade != nil {
		st.Grade = *ns.Grade
	}
	return svc.repo.CreateStudent(st)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) Filter(filter QueryFilter) ([]Student, error) {
	return svc.repo.FilterStudents(filter)
}

func (svc *Service) Update(id int, us UpdateStudent) (Student, error) {
	st := Student{
		ID:      id,
		Name:    core.CleanString(us.Name),
		Section: core.CleanString(us.Section),
	}
	return svc.repo.UpdateStudent(st, us.Grade)
}

func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteStudent(id)
}

// Authenticate checks a claimed student id against a case-insensitive name
// match. No session or token is issued on success.
func (svc *Service) Authenticate(id int, name string) (Student, error) {
	st, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if core.CleanString(name, true) != core.CleanString(st.Name, true) {
		return Student{}, ErrNameMismatch
	}
	return st, nil
}
