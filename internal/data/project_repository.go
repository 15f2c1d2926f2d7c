package data

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
)

type ProjectRepository struct {
	db *surrealdb.DB
}

func NewProjectRepository(db *surrealdb.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func newDocumentID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	id, err := newDocumentID()
	if err != nil {
		return nil, err
	}

	record := projectRecord{
		Title:       project.Title,
		Description: project.Description,
		OwnerId:     project.OwnerId,
		StudentIds:  project.StudentIds,
		TaskIds:     []string{},
		CreatedAt:   models.CustomDateTime{Time: time.Now().UTC()},
	}
	if record.StudentIds == nil {
		record.StudentIds = []int64{}
	}

	created, err := surrealdb.Create[projectRecord](ctx, r.db, models.NewRecordID(projectsTable, id), record)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return created.toDomain(), nil
}

func (r *ProjectRepository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	res, err := surrealdb.Query[[]projectRecord](ctx, r.db,
		"SELECT * FROM type::thing($tb, $id)",
		map[string]any{"tb": projectsTable, "id": id},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	records := (*res)[0].Result
	if len(records) == 0 {
		return nil, errdefs.ErrNotFound
	}
	return records[0].toDomain(), nil
}

func filterClause(f model.ProjectFilter) (string, map[string]any) {
	where := "(is_deleted = false OR $include_deleted = true)"
	vars := map[string]any{"include_deleted": f.IncludeDeleted}

	if f.OwnerId != 0 {
		where += " AND owner_id = $owner"
		vars["owner"] = f.OwnerId
	}
	if f.StudentId != 0 {
		where += " AND student_ids CONTAINS $student"
		vars["student"] = f.StudentId
	}
	if f.Search != "" {
		where += " AND string::contains(string::lowercase(title), string::lowercase($search))"
		vars["search"] = f.Search
	}
	return where, vars
}

func (r *ProjectRepository) CountProjects(ctx context.Context, filter model.ProjectFilter) (int, error) {
	where, vars := filterClause(filter)

	type countResult struct {
		Total int `json:"total"`
	}
	res, err := surrealdb.Query[[]countResult](ctx, r.db,
		"SELECT count() AS total FROM "+projectsTable+" WHERE "+where+" GROUP ALL",
		vars,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	counts := (*res)[0].Result
	if len(counts) == 0 {
		return 0, nil
	}
	return counts[0].Total, nil
}

func (r *ProjectRepository) ListProjects(ctx context.Context, filter model.ProjectFilter, skip, limit int) ([]*model.Project, error) {
	where, vars := filterClause(filter)
	vars["start"] = skip
	vars["limit"] = limit

	res, err := surrealdb.Query[[]projectRecord](ctx, r.db,
		"SELECT * FROM "+projectsTable+" WHERE "+where+
			" ORDER BY created_at DESC START $start LIMIT $limit",
		vars,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	records := (*res)[0].Result
	projects := make([]*model.Project, 0, len(records))
	for i := range records {
		projects = append(projects, records[i].toDomain())
	}
	return projects, nil
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, id, title, description string) (*model.Project, error) {
	res, err := surrealdb.Query[[]projectRecord](ctx, r.db,
		"UPDATE type::thing($tb, $id) SET title = $title, description = $description, is_edited = true RETURN AFTER",
		map[string]any{
			"tb":          projectsTable,
			"id":          id,
			"title":       title,
			"description": description,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	records := (*res)[0].Result
	if len(records) == 0 {
		return nil, errdefs.ErrNotFound
	}
	return records[0].toDomain(), nil
}

func (r *ProjectRepository) SoftDeleteProject(ctx context.Context, id string) (*model.Project, error) {
	res, err := surrealdb.Query[[]projectRecord](ctx, r.db,
		"UPDATE type::thing($tb, $id) SET is_deleted = true RETURN AFTER",
		map[string]any{"tb": projectsTable, "id": id},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	records := (*res)[0].Result
	if len(records) == 0 {
		return nil, errdefs.ErrNotFound
	}
	return records[0].toDomain(), nil
}
