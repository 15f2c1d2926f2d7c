package model

import (
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleTeacher || r == RoleStudent
}

// User is a row of the relational principal store joined with its role name.
type User struct {
	Id           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         Role   `db:"role_name"`
}

type UserPublic struct {
	Id    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Public() *UserPublic {
	return &UserPublic{Id: u.Id, Name: u.Name, Email: u.Email, Role: u.Role}
}

type Project struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerId     int64     `json:"owner_id"`
	StudentIds  []int64   `json:"student_ids"`
	TaskIds     []string  `json:"task_ids"`
	Tasks       []*Task   `json:"tasks,omitempty"`
	IsEdited    bool      `json:"is_edited"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "pending"
)

// Task carries its submissions keyed by student id. The storage boundary
// serializes the map as a sequence; see data.taskRecord.
type Task struct {
	Id          string                `json:"id"`
	ProjectId   string                `json:"project_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      TaskStatus            `json:"status"`
	Submissions map[int64]*Submission `json:"submissions"`
	IsEdited    bool                  `json:"is_edited"`
	IsDeleted   bool                  `json:"is_deleted"`
	CreatedAt   time.Time             `json:"created_at"`
}

type Submission struct {
	StudentId  int64   `json:"student_id"`
	Content    string  `json:"content,omitempty"`
	FileHandle string  `json:"file_handle,omitempty"`
	Grade      *string `json:"grade,omitempty"`
}

type ActivityEntry struct {
	Id          string    `json:"id,omitempty"`
	PrincipalId int64     `json:"principal_id"`
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
}

// File is the relational metadata row behind a blob handle. UploadedBy
// goes NULL when the uploading principal is later deleted; the blob and
// its metadata outlive the account.
type File struct {
	Id          string    `db:"id"`
	Extension   string    `db:"extension"`
	ContentType string    `db:"content_type"`
	Filename    string    `db:"filename"`
	UploadedBy  *int64    `db:"uploaded_by"`
	CreatedAt   time.Time `db:"created_at"`
}
