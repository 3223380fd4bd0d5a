package tests

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/trezcool/darasa/core/student"
	testutil "github.com/trezcool/darasa/tests"
)

func Test_studentApi_query(t *testing.T) {
	e := setup(t)

	john := testutil.CreateStudent(t, e.studentRepo, "John Doe", 10, "Zechariah")
	jane := testutil.CreateStudent(t, e.studentRepo, "Jane Smith", 10, "Zechariah")
	peter := testutil.CreateStudent(t, e.studentRepo, "Peter Parker", 11, "Malachi")

	path := func(name, grade, section string) string {
		v := make(url.Values)
		if name != "" {
			v.Add("name", name)
		}
		if grade != "" {
			v.Add("grade", grade)
		}
		if section != "" {
			v.Add("section", section)
		}
		return "/api/students?" + v.Encode()
	}
	empty := successBody(t, []student.Student{})

	tests := []httpTest{
		{name: "Get all", path: "/api/students", wantCode: http.StatusOK, wantData: successBody(t, []student.Student{john, jane, peter})},
		{name: "name (unknown)", path: path("lol", "", ""), wantCode: http.StatusOK, wantData: empty},
		{name: "name=jane", path: path("jane", "", ""), wantCode: http.StatusOK, wantData: successBody(t, []student.Student{jane})},
		{name: "name=AN (substring)", path: path("AN", "", ""), wantCode: http.StatusOK, wantData: successBody(t, []student.Student{jane})},
		{name: "grade=10", path: path("", "10", ""), wantCode: http.StatusOK, wantData: successBody(t, []student.Student{john, jane})},
		{name: "grade=11", path: path("", "11", ""), wantCode: http.StatusOK, wantData: successBody(t, []student.Student{peter})},
		{name: "grade (unknown)", path: path("", "12", ""), wantCode: http.StatusOK, wantData: empty},
		{
			name: "grade (not an integer)", path: path("", "ten", ""), wantCode: http.StatusBadRequest,
			wantData: errBody(t, map[string]string{"grade": "must be an integer"}),
		},
		{name: "section=zechariah", path: path("", "", "zechariah"), wantCode: http.StatusOK, wantData: successBody(t, []student.Student{john, jane})},
		{name: "section (substring does not match)", path: path("", "", "Zech"), wantCode: http.StatusOK, wantData: empty},
		{name: "all combo (found)", path: path("doe", "10", "ZECHARIAH"), wantCode: http.StatusOK, wantData: successBody(t, []student.Student{john})},
		{name: "all combo (empty)", path: path("peter", "10", ""), wantCode: http.StatusOK, wantData: empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.run(t, tt)
		})
	}
}

func Test_studentApi_create(t *testing.T) {
	e := setup(t)

	tests := []httpTest{
		{
			name: "All fields required", method: http.MethodPost, path: "/api/students", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, map[string]string{
				"name":    "this field is required",
				"grade":   "this field is required",
				"section": "this field is required",
			}),
		},
		{
			name: "Grade must be an integer", method: http.MethodPost, path: "/api/students",
			body:     []byte(`{"name":"John Doe","grade":"ten","section":"Zechariah"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "Create", method: http.MethodPost, path: "/api/students",
			body:     []byte(`{"name":" John Doe ","grade":10,"section":"Zechariah"}`),
			wantCode: http.StatusCreated,
			wantData: successBody(t, student.Student{ID: 1, Name: "John Doe", Grade: 10, Section: "Zechariah"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.run(t, tt)
		})
	}
}

func Test_studentApi_detail(t *testing.T) {
	e := setup(t)

	john := testutil.CreateStudent(t, e.studentRepo, "John Doe", 10, "Zechariah")
	johnPath := "/api/students/" + strconv.Itoa(john.ID)

	updated := john
	updated.Grade = 11

	renamed := updated
	renamed.Name = "Johnny Doe"

	tests := []httpTest{
		{name: "Retrieve", path: johnPath, wantCode: http.StatusOK, wantData: successBody(t, john)},
		{name: "Retrieve (unknown)", path: "/api/students/99", wantCode: http.StatusNotFound, wantData: errBody(t, "student not found")},
		{
			name: "Retrieve (bad id)", path: "/api/students/abc", wantCode: http.StatusBadRequest,
			wantData: errBody(t, map[string]string{"id": "must be an integer"}),
		},
		{
			name: "Update grade only", method: http.MethodPut, path: johnPath, body: []byte(`{"grade":11}`),
			wantCode: http.StatusOK, wantData: successBody(t, updated),
		},
		{
			name: "Update name only", method: http.MethodPut, path: johnPath, body: []byte(`{"name":"Johnny Doe"}`),
			wantCode: http.StatusOK, wantData: successBody(t, renamed),
		},
		{
			name: "Update (unknown)", method: http.MethodPut, path: "/api/students/99", body: []byte(`{"name":"Nobody"}`),
			wantCode: http.StatusNotFound, wantData: errBody(t, "student not found"),
		},
		{
			name: "Delete", method: http.MethodDelete, path: johnPath,
			wantCode: http.StatusOK, wantData: successBody(t, map[string]int{"deleted": john.ID}),
		},
		{name: "Delete (gone)", method: http.MethodDelete, path: johnPath, wantCode: http.StatusNotFound, wantData: errBody(t, "student not found")},
		{name: "Retrieve (gone)", path: johnPath, wantCode: http.StatusNotFound, wantData: errBody(t, "student not found")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.run(t, tt)
		})
	}
}

func Test_studentApi_login(t *testing.T) {
	e := setup(t)

	john := testutil.CreateStudent(t, e.studentRepo, "John Doe", 10, "Zechariah")

	tests := []httpTest{
		{
			name: "Login", method: http.MethodPost, path: "/api/login",
			body:     []byte(`{"id":1,"name":"john doe"}`),
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{
				"status": "success",
				"data":   john,
				"next":   "/api/students/1/attendance",
			}),
		},
		{
			name: "Name is checked", method: http.MethodPost, path: "/api/login",
			body:     []byte(`{"id":1,"name":"wrong name"}`),
			wantCode: http.StatusUnauthorized, wantData: errBody(t, "name does not match our records"),
		},
		{
			name: "Unknown student", method: http.MethodPost, path: "/api/login",
			body:     []byte(`{"id":99,"name":"x"}`),
			wantCode: http.StatusNotFound, wantData: errBody(t, "student not found"),
		},
		{
			name: "Both fields required", method: http.MethodPost, path: "/api/login", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, map[string]string{
				"id":   "this field is required",
				"name": "this field is required",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.run(t, tt)
		})
	}
}
