package service

import (
	"context"
	"io"
	"time"

	"projecttrack/internal/model"
)

type UserRepository interface {
	ResolveRoleByName(ctx context.Context, name string) (int64, error)
	CreateUser(ctx context.Context, name, email, passwordHash string, roleID int64) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, project *model.Project) (*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	CountProjects(ctx context.Context, filter model.ProjectFilter) (int, error)
	ListProjects(ctx context.Context, filter model.ProjectFilter, skip, limit int) ([]*model.Project, error)
	UpdateProject(ctx context.Context, id, title, description string) (*model.Project, error)
	SoftDeleteProject(ctx context.Context, id string) (*model.Project, error)
}

type TaskRepository interface {
	CreateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListByProjects(ctx context.Context, projectIDs []string) (map[string][]*model.Task, error)
	SaveSubmissions(ctx context.Context, task *model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, id, title, description string) (*model.Task, error)
	SoftDeleteTask(ctx context.Context, id string) (*model.Task, error)
}

type ActivityRepository interface {
	Append(ctx context.Context, principalID int64, action string) error
	Count(ctx context.Context) (int, error)
	Page(ctx context.Context, skip, limit int) ([]*model.ActivityEntry, error)
}

// ActivityLog is the append side consumed by the other services. Append
// failures never fail the calling operation.
type ActivityLog interface {
	Log(ctx context.Context, principalID int64, action string)
}

type FileRepository interface {
	CreateFile(ctx context.Context, file *model.File) (*model.File, error)
	GetFile(ctx context.Context, id string) (*model.File, error)
}

// BlobStore streams bytes to durable storage and back. Store returns an
// opaque handle only after the write completes.
type BlobStore interface {
	Store(ctx context.Context, body io.Reader, name, contentType string, uploadedBy int64) (string, error)
	Retrieve(ctx context.Context, handle string) (io.ReadCloser, *model.File, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type EventProducer interface {
	Send(ctx context.Context, topic string, message interface{}) error
}
