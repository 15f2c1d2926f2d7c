package data

import (
	"context"
	"fmt"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
)

type TaskRepository struct {
	db *surrealdb.DB
}

func NewTaskRepository(db *surrealdb.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTask creates the task and appends its id to the parent project's
// task_ids in one transaction, so a crash cannot orphan the task.
func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	id, err := newDocumentID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := taskRecord{
		ProjectId:   task.ProjectId,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(model.TaskStatusPending),
		Submissions: []submissionRecord{},
		CreatedAt:   models.CustomDateTime{Time: now},
	}

	_, err = surrealdb.Query[any](ctx, r.db,
		`BEGIN TRANSACTION;
CREATE type::thing($tasks_tb, $id) CONTENT $content;
UPDATE type::thing($projects_tb, $project_id) SET task_ids += $id;
COMMIT TRANSACTION;`,
		map[string]any{
			"tasks_tb":    tasksTable,
			"projects_tb": projectsTable,
			"id":          id,
			"project_id":  task.ProjectId,
			"content":     record,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return r.GetTask(ctx, id)
}

func (r *TaskRepository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	res, err := surrealdb.Query[[]taskRecord](ctx, r.db,
		"SELECT * FROM type::thing($tb, $id)",
		map[string]any{"tb": tasksTable, "id": id},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	records := (*res)[0].Result
	if len(records) == 0 {
		return nil, errdefs.ErrNotFound
	}
	return records[0].toDomain(), nil
}

// ListByProjects returns the tasks of several projects at once so listing
// endpoints resolve tasks without a query per project. Soft-deleted tasks
// stay visible in project listings.
func (r *TaskRepository) ListByProjects(ctx context.Context, projectIDs []string) (map[string][]*model.Task, error) {
	if len(projectIDs) == 0 {
		return map[string][]*model.Task{}, nil
	}

	res, err := surrealdb.Query[[]taskRecord](ctx, r.db,
		"SELECT * FROM "+tasksTable+" WHERE project_id IN $project_ids ORDER BY created_at ASC",
		map[string]any{"project_ids": projectIDs},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	byProject := make(map[string][]*model.Task)
	records := (*res)[0].Result
	for i := range records {
		task := records[i].toDomain()
		byProject[task.ProjectId] = append(byProject[task.ProjectId], task)
	}
	return byProject, nil
}

// SaveSubmissions replaces the task's submission sequence. Callers merge
// in memory first; the later of two concurrent writers wins.
func (r *TaskRepository) SaveSubmissions(ctx context.Context, task *model.Task) (*model.Task, error) {
	res, err := surrealdb.Query[[]taskRecord](ctx, r.db,
		"UPDATE type::thing($tb, $id) SET submissions = $submissions RETURN AFTER",
		map[string]any{
			"tb":          tasksTable,
			"id":          task.Id,
			"submissions": submissionRecords(task),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save submissions: %w", err)
	}
	records := (*res)[0].Result
	if len(records) == 0 {
		return nil, errdefs.ErrNotFound
	}
	return records[0].toDomain(), nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id, title, description string) (*model.Task, error) {
	res, err := surrealdb.Query[[]taskRecord](ctx, r.db,
		"UPDATE type::thing($tb, $id) SET title = $title, description = $description, is_edited = true RETURN AFTER",
		map[string]any{
			"tb":          tasksTable,
			"id":          id,
			"title":       title,
			"description": description,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	records := (*res)[0].Result
	if len(records) == 0 {
		return nil, errdefs.ErrNotFound
	}
	return records[0].toDomain(), nil
}

func (r *TaskRepository) SoftDeleteTask(ctx context.Context, id string) (*model.Task, error) {
	res, err := surrealdb.Query[[]taskRecord](ctx, r.db,
		"UPDATE type::thing($tb, $id) SET is_deleted = true RETURN AFTER",
		map[string]any{"tb": tasksTable, "id": id},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	records := (*res)[0].Result
	if len(records) == 0 {
		return nil, errdefs.ErrNotFound
	}
	return records[0].toDomain(), nil
}
