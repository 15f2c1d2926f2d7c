package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
)

// FileService is the blob store: bytes go to S3, the metadata row keyed by
// the returned handle goes to the relational store.
type FileService struct {
	fileRepo FileRepository
	s3Client *s3.Client
	bucket   *string
}

func NewFileService(ctx context.Context, fileRepo FileRepository, client *s3.Client, bucketName string) (*FileService, error) {
	s := &FileService{fileRepo: fileRepo, s3Client: client, bucket: aws.String(bucketName)}
	err := s.createBucket(ctx, bucketName)
	return s, err
}

// Store streams the body into the bucket and returns the handle once the
// write durably completes. On failure nothing is returned and the metadata
// row is not written.
func (s *FileService) Store(ctx context.Context, body io.Reader, name, contentType string, uploadedBy int64) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	extension := strings.ToLower(path.Ext(name))

	key := id.String() + extension
	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      s.bucket,
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob write failed: %w", errdefs.ErrStorage)
	}

	_, err = s.fileRepo.CreateFile(ctx, &model.File{
		Id:          id.String(),
		Extension:   extension,
		ContentType: contentType,
		Filename:    name,
		UploadedBy:  &uploadedBy,
	})
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Retrieve opens a stream for the handle. The caller owns the returned
// body and pipes it out without buffering the whole object.
func (s *FileService) Retrieve(ctx context.Context, handle string) (io.ReadCloser, *model.File, error) {
	file, err := s.fileRepo.GetFile(ctx, handle)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, nil, fmt.Errorf("unknown file handle: %w", errdefs.ErrNotFound)
		}
		return nil, nil, err
	}

	key := file.Id + file.Extension
	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: s.bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("blob read failed: %w", errdefs.ErrStorage)
	}

	return out.Body, file, nil
}

func (s *FileService) createBucket(ctx context.Context, name string) error {
	_, err := s.s3Client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(name)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
	}
	return err
}
