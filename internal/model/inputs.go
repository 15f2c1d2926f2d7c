package model

// PageRequest is the skip/limit pagination contract shared by the listing
// operations. Page numbers start at 1.
type PageRequest struct {
	Page     int
	PageSize int
	Search   string
}

func (p PageRequest) Normalize(defaultSize int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultSize
	}
	return p
}

func (p PageRequest) Skip() int {
	return (p.Page - 1) * p.PageSize
}

// Page is a single page of results with totals derived from a separate
// count query, never from the returned slice length.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPage[T any](items []T, total int, req PageRequest) *Page[T] {
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = (total + req.PageSize - 1) / req.PageSize
	}
	return &Page[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}

// ProjectFilter narrows listings to an owner or an assigned student.
// Soft-deleted projects are filtered out unless IncludeDeleted is set.
type ProjectFilter struct {
	OwnerId        int64
	StudentId      int64
	Search         string
	IncludeDeleted bool
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	RoleName string
}

type LoginInput struct {
	Email    string
	Password string
}

type CreateProjectInput struct {
	Title       string
	Description string
	StudentIds  []int64
}

type AddTaskInput struct {
	ProjectId   string
	Title       string
	Description string
}

type EditInput struct {
	Title       string
	Description string
}

type SubmitInput struct {
	TaskId     string
	Content    string
	FileHandle string
}

type GradeInput struct {
	TaskId    string
	StudentId int64
	Grade     string
}
