package models

// Departments is the fixed set of departments subjects, staff and students belong to.
var Departments = []string{
	"Civil Engineering",
	"Mechanical Engineering",
	"Electronics & Communication Engineering",
	"Computer Engineering",
	"Chemical Engineering",
	"Automobile Engineering",
	"Mechatronics Engineering",
	"Instrumentation and Control Engineering",
	"Communication and Computer Networking Engineering",
	"Basic Science",
}

// Units is the curriculum subdivision a question can be tagged with.
var Units = []string{"Unit 1", "Unit 2", "Unit 3", "Unit 4", "Unit 5"}

func IsValidDepartment(department string) bool {
	for _, d := range Departments {
		if d == department {
			return true
		}
	}
	return false
}

func IsValidUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}
	return false
}
