package service

import (
	"context"
	"fmt"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
	"projecttrack/pkg/ctxdata"
)

const defaultPageSize = 5

type ProjectService struct {
	projectRepo ProjectRepository
	taskRepo    TaskRepository
	activity    ActivityLog
}

func NewProjectService(projectRepo ProjectRepository, taskRepo TaskRepository, activity ActivityLog) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, taskRepo: taskRepo, activity: activity}
}

func (s *ProjectService) CreateProject(ctx context.Context, input *model.CreateProjectInput) (*model.Project, error) {
	ownerID, ok := ctxdata.GetPrincipalID(ctx)
	if !ok {
		return nil, errdefs.ErrAuthentication
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title is required: %w", errdefs.ErrValidation)
	}

	project, err := s.projectRepo.CreateProject(ctx, &model.Project{
		Title:       input.Title,
		Description: input.Description,
		OwnerId:     ownerID,
		StudentIds:  input.StudentIds,
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, ownerID, fmt.Sprintf("Created project %q", project.Title))
	return project, nil
}

// ListOwned pages through the requesting teacher's projects, newest first,
// with tasks resolved. Total and page count come from a separate count
// query, not from the returned slice.
func (s *ProjectService) ListOwned(ctx context.Context, req model.PageRequest) (*model.Page[*model.Project], error) {
	ownerID, ok := ctxdata.GetPrincipalID(ctx)
	if !ok {
		return nil, errdefs.ErrAuthentication
	}
	filter := model.ProjectFilter{OwnerId: ownerID, Search: req.Search}
	return s.listProjects(ctx, filter, req)
}

// ListAssigned is the student view, filtered by project membership.
func (s *ProjectService) ListAssigned(ctx context.Context, req model.PageRequest) (*model.Page[*model.Project], error) {
	studentID, ok := ctxdata.GetPrincipalID(ctx)
	if !ok {
		return nil, errdefs.ErrAuthentication
	}
	filter := model.ProjectFilter{StudentId: studentID, Search: req.Search}
	return s.listProjects(ctx, filter, req)
}

func (s *ProjectService) listProjects(ctx context.Context, filter model.ProjectFilter, req model.PageRequest) (*model.Page[*model.Project], error) {
	req = req.Normalize(defaultPageSize)

	total, err := s.projectRepo.CountProjects(ctx, filter)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListProjects(ctx, filter, req.Skip(), req.PageSize)
	if err != nil {
		return nil, err
	}

	if err := s.resolveTasks(ctx, projects); err != nil {
		return nil, err
	}

	return model.NewPage(projects, total, req), nil
}

// resolveTasks attaches each project's tasks in task_ids order. Tasks that
// predate a lost link update still appear through their project_id
// back-reference, after the linked ones.
func (s *ProjectService) resolveTasks(ctx context.Context, projects []*model.Project) error {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.Id)
	}

	byProject, err := s.taskRepo.ListByProjects(ctx, ids)
	if err != nil {
		return err
	}

	for _, p := range projects {
		tasks := byProject[p.Id]
		byID := make(map[string]*model.Task, len(tasks))
		for _, t := range tasks {
			byID[t.Id] = t
		}

		ordered := make([]*model.Task, 0, len(tasks))
		for _, id := range p.TaskIds {
			if t, ok := byID[id]; ok {
				ordered = append(ordered, t)
				delete(byID, id)
			}
		}
		for _, t := range tasks {
			if _, unlinked := byID[t.Id]; unlinked {
				ordered = append(ordered, t)
			}
		}
		p.Tasks = ordered
	}
	return nil
}

func (s *ProjectService) EditProject(ctx context.Context, id string, input *model.EditInput) (*model.Project, error) {
	if err := s.requireOwnership(ctx, id); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.UpdateProject(ctx, id, input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	if ownerID, ok := ctxdata.GetPrincipalID(ctx); ok {
		s.activity.Log(ctx, ownerID, fmt.Sprintf("Edited project %s", id))
	}
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) (*model.Project, error) {
	if err := s.requireOwnership(ctx, id); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.SoftDeleteProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID, ok := ctxdata.GetPrincipalID(ctx); ok {
		s.activity.Log(ctx, ownerID, fmt.Sprintf("Deleted project %s", id))
	}
	return project, nil
}

// AddTask creates a task under the owning teacher's project and links it
// into the parent's task_ids. Creation and link are one transactional
// write in the repository.
func (s *ProjectService) AddTask(ctx context.Context, input *model.AddTaskInput) (*model.Task, error) {
	if input.ProjectId == "" || input.Title == "" {
		return nil, fmt.Errorf("project_id and title are required: %w", errdefs.ErrValidation)
	}
	if err := s.requireOwnership(ctx, input.ProjectId); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.CreateTask(ctx, &model.Task{
		ProjectId:   input.ProjectId,
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	if ownerID, ok := ctxdata.GetPrincipalID(ctx); ok {
		s.activity.Log(ctx, ownerID, fmt.Sprintf("Added task %q to project %s", task.Title, input.ProjectId))
	}
	return task, nil
}

func (s *ProjectService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.taskRepo.GetTask(ctx, id)
}

func (s *ProjectService) EditTask(ctx context.Context, id string, input *model.EditInput) (*model.Task, error) {
	task, err := s.taskRepo.UpdateTask(ctx, id, input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	if userID, ok := ctxdata.GetPrincipalID(ctx); ok {
		s.activity.Log(ctx, userID, fmt.Sprintf("Edited task %s", id))
	}
	return task, nil
}

func (s *ProjectService) DeleteTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.taskRepo.SoftDeleteTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if userID, ok := ctxdata.GetPrincipalID(ctx); ok {
		s.activity.Log(ctx, userID, fmt.Sprintf("Deleted task %s", id))
	}
	return task, nil
}

// requireOwnership checks that the requesting principal owns the project.
// Mutations are owner-only even within the teacher role.
func (s *ProjectService) requireOwnership(ctx context.Context, projectID string) error {
	userID, ok := ctxdata.GetPrincipalID(ctx)
	if !ok {
		return errdefs.ErrAuthentication
	}
	project, err := s.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerId != userID {
		return fmt.Errorf("not the project owner: %w", errdefs.ErrPermissionDenied)
	}
	return nil
}
