package data

import (
	"slices"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"projecttrack/internal/model"
)

const (
	projectsTable = "projects"
	tasksTable    = "tasks"
	activityTable = "activity_log"
)

// Document shapes as stored in SurrealDB. Submissions are kept as a
// sequence here and as a map keyed by student id in the domain type.

type projectRecord struct {
	ID          *models.RecordID      `json:"id,omitempty"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	OwnerId     int64                 `json:"owner_id"`
	StudentIds  []int64               `json:"student_ids"`
	TaskIds     []string              `json:"task_ids"`
	IsEdited    bool                  `json:"is_edited"`
	IsDeleted   bool                  `json:"is_deleted"`
	CreatedAt   models.CustomDateTime `json:"created_at"`
}

type taskRecord struct {
	ID          *models.RecordID      `json:"id,omitempty"`
	ProjectId   string                `json:"project_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      string                `json:"status"`
	Submissions []submissionRecord    `json:"submissions"`
	IsEdited    bool                  `json:"is_edited"`
	IsDeleted   bool                  `json:"is_deleted"`
	CreatedAt   models.CustomDateTime `json:"created_at"`
}

type submissionRecord struct {
	StudentId  int64   `json:"student_id"`
	Content    string  `json:"content,omitempty"`
	FileHandle string  `json:"file_handle,omitempty"`
	Grade      *string `json:"grade,omitempty"`
}

type activityRecord struct {
	ID          *models.RecordID      `json:"id,omitempty"`
	PrincipalId int64                 `json:"principal_id"`
	Action      string                `json:"action"`
	Timestamp   models.CustomDateTime `json:"timestamp"`
}

func recordKey(id *models.RecordID) string {
	if id == nil {
		return ""
	}
	if s, ok := id.ID.(string); ok {
		return s
	}
	return id.String()
}

func (r *projectRecord) toDomain() *model.Project {
	return &model.Project{
		Id:          recordKey(r.ID),
		Title:       r.Title,
		Description: r.Description,
		OwnerId:     r.OwnerId,
		StudentIds:  r.StudentIds,
		TaskIds:     r.TaskIds,
		IsEdited:    r.IsEdited,
		IsDeleted:   r.IsDeleted,
		CreatedAt:   r.CreatedAt.Time,
	}
}

func (r *taskRecord) toDomain() *model.Task {
	submissions := make(map[int64]*model.Submission, len(r.Submissions))
	for _, s := range r.Submissions {
		submissions[s.StudentId] = &model.Submission{
			StudentId:  s.StudentId,
			Content:    s.Content,
			FileHandle: s.FileHandle,
			Grade:      s.Grade,
		}
	}
	return &model.Task{
		Id:          recordKey(r.ID),
		ProjectId:   r.ProjectId,
		Title:       r.Title,
		Description: r.Description,
		Status:      model.TaskStatus(r.Status),
		Submissions: submissions,
		IsEdited:    r.IsEdited,
		IsDeleted:   r.IsDeleted,
		CreatedAt:   r.CreatedAt.Time,
	}
}

// submissionRecords flattens the domain map back into the stored sequence.
// Order follows student id ascending so repeated saves stay byte-stable.
func submissionRecords(task *model.Task) []submissionRecord {
	records := make([]submissionRecord, 0, len(task.Submissions))
	ids := make([]int64, 0, len(task.Submissions))
	for id := range task.Submissions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		s := task.Submissions[id]
		records = append(records, submissionRecord{
			StudentId:  s.StudentId,
			Content:    s.Content,
			FileHandle: s.FileHandle,
			Grade:      s.Grade,
		})
	}
	return records
}

func (r *activityRecord) toDomain() *model.ActivityEntry {
	return &model.ActivityEntry{
		Id:          recordKey(r.ID),
		PrincipalId: r.PrincipalId,
		Action:      r.Action,
		Timestamp:   r.Timestamp.Time,
	}
}
