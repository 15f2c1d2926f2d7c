package service

import (
	"context"
	"fmt"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
	"projecttrack/pkg/ctxdata"
)

type SubmissionService struct {
	taskRepo TaskRepository
	activity ActivityLog
}

func NewSubmissionService(taskRepo TaskRepository, activity ActivityLog) *SubmissionService {
	return &SubmissionService{taskRepo: taskRepo, activity: activity}
}

// Submit upserts the requesting student's submission on a task. An
// existing submission is patched: content and file handle each overwrite
// the prior value only when newly supplied. The read-modify-write carries
// no optimistic lock; of two concurrent submits the later write wins.
func (s *SubmissionService) Submit(ctx context.Context, input *model.SubmitInput) (*model.Task, error) {
	studentID, ok := ctxdata.GetPrincipalID(ctx)
	if !ok {
		return nil, errdefs.ErrAuthentication
	}
	if input.TaskId == "" {
		return nil, fmt.Errorf("task_id is required: %w", errdefs.ErrValidation)
	}
	if input.Content == "" && input.FileHandle == "" {
		return nil, fmt.Errorf("content or file_handle is required: %w", errdefs.ErrValidation)
	}

	task, err := s.taskRepo.GetTask(ctx, input.TaskId)
	if err != nil {
		return nil, err
	}

	if task.Submissions == nil {
		task.Submissions = make(map[int64]*model.Submission)
	}

	if existing, found := task.Submissions[studentID]; found {
		if input.Content != "" {
			existing.Content = input.Content
		}
		if input.FileHandle != "" {
			existing.FileHandle = input.FileHandle
		}
	} else {
		task.Submissions[studentID] = &model.Submission{
			StudentId:  studentID,
			Content:    input.Content,
			FileHandle: input.FileHandle,
		}
	}

	updated, err := s.taskRepo.SaveSubmissions(ctx, task)
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, studentID, fmt.Sprintf("Submitted task %s", input.TaskId))
	return updated, nil
}

// Grade sets the grade on an existing submission. Grading a pair that
// never submitted fails; re-grading is allowed.
func (s *SubmissionService) Grade(ctx context.Context, input *model.GradeInput) (*model.Task, error) {
	teacherID, ok := ctxdata.GetPrincipalID(ctx)
	if !ok {
		return nil, errdefs.ErrAuthentication
	}
	if input.TaskId == "" || input.StudentId == 0 || input.Grade == "" {
		return nil, fmt.Errorf("task_id, student_id and grade are required: %w", errdefs.ErrValidation)
	}

	task, err := s.taskRepo.GetTask(ctx, input.TaskId)
	if err != nil {
		return nil, err
	}

	submission, found := task.Submissions[input.StudentId]
	if !found {
		return nil, fmt.Errorf("no submission from student %d: %w", input.StudentId, errdefs.ErrNotFound)
	}
	grade := input.Grade
	submission.Grade = &grade

	updated, err := s.taskRepo.SaveSubmissions(ctx, task)
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, teacherID, fmt.Sprintf("Graded submission for task %s (student %d)", input.TaskId, input.StudentId))
	return updated, nil
}
