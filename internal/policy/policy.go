// Package policy holds the declarative role-to-operation table. Every
// protected route names its operation; the gate consults the table before
// any repository call. The self-delete guard is identity-based and lives
// in the delete-user operation, not here.
package policy

import (
	"projecttrack/internal/model"
)

type Operation string

const (
	OpListUsers     Operation = "users.list"
	OpCreateUser    Operation = "users.create"
	OpDeleteUser    Operation = "users.delete"
	OpListLogs      Operation = "logs.list"
	OpCreateProject Operation = "projects.create"
	OpListOwned     Operation = "projects.list_owned"
	OpEditProject   Operation = "projects.edit"
	OpDeleteProject Operation = "projects.delete"
	OpAddTask       Operation = "tasks.add"
	OpGetTask       Operation = "tasks.get"
	OpEditTask      Operation = "tasks.edit"
	OpDeleteTask    Operation = "tasks.delete"
	OpGrade         Operation = "submissions.grade"
	OpListAssigned  Operation = "projects.list_assigned"
	OpSubmit        Operation = "submissions.submit"
	OpUploadFile    Operation = "files.upload"
	OpDownloadFile  Operation = "files.download"
)

var allowed = map[model.Role]map[Operation]bool{
	model.RoleAdmin: {
		OpListUsers:  true,
		OpCreateUser: true,
		OpDeleteUser: true,
		OpListLogs:   true,
	},
	model.RoleTeacher: {
		OpCreateProject: true,
		OpListOwned:     true,
		OpEditProject:   true,
		OpDeleteProject: true,
		OpAddTask:       true,
		OpGetTask:       true,
		OpEditTask:      true,
		OpDeleteTask:    true,
		OpGrade:         true,
		OpUploadFile:    true,
		OpDownloadFile:  true,
	},
	model.RoleStudent: {
		OpListAssigned: true,
		OpSubmit:       true,
		OpUploadFile:   true,
		OpDownloadFile: true,
	},
}

// Allowed reports whether the role may perform the operation.
func Allowed(role model.Role, op Operation) bool {
	ops, ok := allowed[role]
	return ok && ops[op]
}
