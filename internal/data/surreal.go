package data

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

type SurrealConfig struct {
	Endpoint  string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// NewSurreal connects to the document store and selects the configured
// namespace and database.
func NewSurreal(ctx context.Context, cfg SurrealConfig) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	if _, err := db.SignIn(ctx, surrealdb.Auth{
		Username: cfg.Username,
		Password: cfg.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to surrealdb: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to select surrealdb namespace: %w", err)
	}

	return db, nil
}
