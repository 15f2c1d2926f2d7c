package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
)

func TestCreateProject(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		log := &recordingLog{}
		svc := NewProjectService(projectRepo, new(MockTaskRepository), log)

		projectRepo.On("CreateProject", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
			return p.OwnerId == 2 && p.Title == "Compilers"
		})).Return(&model.Project{Id: "project-1", Title: "Compilers", OwnerId: 2}, nil)

		project, err := svc.CreateProject(principalCtx(2, model.RoleTeacher), &model.CreateProjectInput{
			Title:      "Compilers",
			StudentIds: []int64{7, 8},
		})
		require.NoError(t, err)
		assert.Equal(t, "project-1", project.Id)
		assert.Contains(t, log.all(), `Created project "Compilers"`)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		svc := NewProjectService(new(MockProjectRepository), new(MockTaskRepository), &recordingLog{})

		_, err := svc.CreateProject(principalCtx(2, model.RoleTeacher), &model.CreateProjectInput{})
		assert.ErrorIs(t, err, errdefs.ErrValidation)
	})

	t.Run("NoPrincipal", func(t *testing.T) {
		svc := NewProjectService(new(MockProjectRepository), new(MockTaskRepository), &recordingLog{})

		_, err := svc.CreateProject(context.Background(), &model.CreateProjectInput{Title: "Compilers"})
		assert.ErrorIs(t, err, errdefs.ErrAuthentication)
	})
}

func TestListOwned(t *testing.T) {
	t.Run("PaginationMath", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		taskRepo := new(MockTaskRepository)
		svc := NewProjectService(projectRepo, taskRepo, &recordingLog{})

		filter := model.ProjectFilter{OwnerId: 2}
		pageItems := []*model.Project{
			{Id: "project-6", OwnerId: 2},
			{Id: "project-7", OwnerId: 2},
			{Id: "project-8", OwnerId: 2},
			{Id: "project-9", OwnerId: 2},
			{Id: "project-10", OwnerId: 2},
		}
		projectRepo.On("CountProjects", mock.Anything, filter).Return(11, nil)
		projectRepo.On("ListProjects", mock.Anything, filter, 5, 5).Return(pageItems, nil)
		taskRepo.On("ListByProjects", mock.Anything, mock.Anything).Return(map[string][]*model.Task{}, nil)

		page, err := svc.ListOwned(principalCtx(2, model.RoleTeacher), model.PageRequest{Page: 2, PageSize: 5})
		require.NoError(t, err)

		assert.Equal(t, 11, page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 5, page.PageSize)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Items, 5)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		taskRepo := new(MockTaskRepository)
		svc := NewProjectService(projectRepo, taskRepo, &recordingLog{})

		filter := model.ProjectFilter{OwnerId: 2}
		projectRepo.On("CountProjects", mock.Anything, filter).Return(0, nil)
		projectRepo.On("ListProjects", mock.Anything, filter, 0, defaultPageSize).Return([]*model.Project{}, nil)
		taskRepo.On("ListByProjects", mock.Anything, mock.Anything).Return(map[string][]*model.Task{}, nil)

		page, err := svc.ListOwned(principalCtx(2, model.RoleTeacher), model.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, defaultPageSize, page.PageSize)
		assert.Equal(t, 0, page.TotalPages)
	})

	t.Run("TasksResolvedInLinkOrder", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		taskRepo := new(MockTaskRepository)
		svc := NewProjectService(projectRepo, taskRepo, &recordingLog{})

		project := &model.Project{
			Id:      "project-1",
			OwnerId: 2,
			TaskIds: []string{"task-b", "task-a"},
		}
		filter := model.ProjectFilter{OwnerId: 2}
		projectRepo.On("CountProjects", mock.Anything, filter).Return(1, nil)
		projectRepo.On("ListProjects", mock.Anything, filter, 0, 5).Return([]*model.Project{project}, nil)
		taskRepo.On("ListByProjects", mock.Anything, []string{"project-1"}).Return(map[string][]*model.Task{
			"project-1": {
				{Id: "task-a", ProjectId: "project-1"},
				{Id: "task-b", ProjectId: "project-1"},
				{Id: "task-orphan", ProjectId: "project-1"},
			},
		}, nil)

		page, err := svc.ListOwned(principalCtx(2, model.RoleTeacher), model.PageRequest{PageSize: 5})
		require.NoError(t, err)

		tasks := page.Items[0].Tasks
		require.Len(t, tasks, 3)
		assert.Equal(t, "task-b", tasks[0].Id)
		assert.Equal(t, "task-a", tasks[1].Id)
		assert.Equal(t, "task-orphan", tasks[2].Id, "tasks missing from task_ids still surface, after the linked ones")
	})
}

func TestEditProject(t *testing.T) {
	t.Run("OwnerCanEdit", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		svc := NewProjectService(projectRepo, new(MockTaskRepository), &recordingLog{})

		projectRepo.On("GetProject", mock.Anything, "project-1").Return(&model.Project{Id: "project-1", OwnerId: 2}, nil)
		projectRepo.On("UpdateProject", mock.Anything, "project-1", "New title", "New description").
			Return(&model.Project{Id: "project-1", OwnerId: 2, Title: "New title", IsEdited: true}, nil)

		project, err := svc.EditProject(principalCtx(2, model.RoleTeacher), "project-1", &model.EditInput{
			Title:       "New title",
			Description: "New description",
		})
		require.NoError(t, err)
		assert.True(t, project.IsEdited)
	})

	t.Run("NonOwnerDenied", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		svc := NewProjectService(projectRepo, new(MockTaskRepository), &recordingLog{})

		projectRepo.On("GetProject", mock.Anything, "project-1").Return(&model.Project{Id: "project-1", OwnerId: 2}, nil)

		_, err := svc.EditProject(principalCtx(3, model.RoleTeacher), "project-1", &model.EditInput{Title: "Hijack"})
		assert.ErrorIs(t, err, errdefs.ErrPermissionDenied)
		projectRepo.AssertNotCalled(t, "UpdateProject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteProject(t *testing.T) {
	t.Run("SoftDelete", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		svc := NewProjectService(projectRepo, new(MockTaskRepository), &recordingLog{})

		projectRepo.On("GetProject", mock.Anything, "project-1").Return(&model.Project{Id: "project-1", OwnerId: 2}, nil)
		projectRepo.On("SoftDeleteProject", mock.Anything, "project-1").
			Return(&model.Project{Id: "project-1", OwnerId: 2, IsDeleted: true}, nil)

		project, err := svc.DeleteProject(principalCtx(2, model.RoleTeacher), "project-1")
		require.NoError(t, err)
		assert.True(t, project.IsDeleted)
	})

	t.Run("UnknownProject", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		svc := NewProjectService(projectRepo, new(MockTaskRepository), &recordingLog{})

		projectRepo.On("GetProject", mock.Anything, "missing").Return(nil, errdefs.ErrNotFound)

		_, err := svc.DeleteProject(principalCtx(2, model.RoleTeacher), "missing")
		assert.ErrorIs(t, err, errdefs.ErrNotFound)
	})
}

func TestAddTask(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		taskRepo := new(MockTaskRepository)
		log := &recordingLog{}
		svc := NewProjectService(projectRepo, taskRepo, log)

		projectRepo.On("GetProject", mock.Anything, "project-1").Return(&model.Project{Id: "project-1", OwnerId: 2}, nil)
		taskRepo.On("CreateTask", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
			return task.ProjectId == "project-1" && task.Title == "Write tests"
		})).Return(&model.Task{Id: "task-1", ProjectId: "project-1", Title: "Write tests"}, nil)

		task, err := svc.AddTask(principalCtx(2, model.RoleTeacher), &model.AddTaskInput{
			ProjectId: "project-1",
			Title:     "Write tests",
		})
		require.NoError(t, err)
		assert.Equal(t, "task-1", task.Id)
		assert.Contains(t, log.all(), `Added task "Write tests" to project project-1`)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewProjectService(new(MockProjectRepository), new(MockTaskRepository), &recordingLog{})

		_, err := svc.AddTask(principalCtx(2, model.RoleTeacher), &model.AddTaskInput{Title: "Write tests"})
		assert.ErrorIs(t, err, errdefs.ErrValidation)
	})

	t.Run("NonOwnerDenied", func(t *testing.T) {
		projectRepo := new(MockProjectRepository)
		taskRepo := new(MockTaskRepository)
		svc := NewProjectService(projectRepo, taskRepo, &recordingLog{})

		projectRepo.On("GetProject", mock.Anything, "project-1").Return(&model.Project{Id: "project-1", OwnerId: 2}, nil)

		_, err := svc.AddTask(principalCtx(3, model.RoleTeacher), &model.AddTaskInput{
			ProjectId: "project-1",
			Title:     "Write tests",
		})
		assert.ErrorIs(t, err, errdefs.ErrPermissionDenied)
		taskRepo.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
	})
}
