package data

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"projecttrack/internal/model"
)

type FileRepository struct {
	db *pgxpool.Pool
}

func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) CreateFile(ctx context.Context, file *model.File) (*model.File, error) {
	query := `
INSERT INTO files (id, extension, content_type, filename, uploaded_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, extension, content_type, filename, uploaded_by, created_at
`
	var created model.File
	err := pgxscan.Get(ctx, r.db, &created, query,
		file.Id,
		file.Extension,
		file.ContentType,
		file.Filename,
		file.UploadedBy,
	)
	if err != nil {
		return nil, handleError(err)
	}
	return &created, nil
}

func (r *FileRepository) GetFile(ctx context.Context, id string) (*model.File, error) {
	query := `
SELECT id, extension, content_type, filename, uploaded_by, created_at
FROM files
WHERE id = $1
`
	var file model.File
	err := pgxscan.Get(ctx, r.db, &file, query, id)
	if err != nil {
		return nil, handleError(err)
	}
	return &file, nil
}
