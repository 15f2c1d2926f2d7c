package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"projecttrack/internal/auth"
	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
	"projecttrack/pkg/ctxdata"
)

const (
	userListCacheKey = "users:all"
	userListCacheTTL = 30 * time.Second
)

type UserService struct {
	userRepo UserRepository
	tokens   *auth.TokenService
	activity ActivityLog
	cache    Cache
}

func NewUserService(userRepo UserRepository, tokens *auth.TokenService, activity ActivityLog, cache Cache) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens, activity: activity, cache: cache}
}

// Register creates a principal. The role is resolved by name at creation
// time and fixed afterwards.
func (s *UserService) Register(ctx context.Context, input *model.CreateUserInput) (*model.UserPublic, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.RoleName == "" {
		return nil, fmt.Errorf("all fields are required: %w", errdefs.ErrValidation)
	}

	roleID, err := s.userRepo.ResolveRoleByName(ctx, strings.ToLower(input.RoleName))
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, fmt.Errorf("invalid role %q: %w", input.RoleName, errdefs.ErrValidation)
		}
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, input.Name, input.Email, hash, roleID)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	s.activity.Log(ctx, user.Id, fmt.Sprintf("Registered as %s", user.Role))
	return user.Public(), nil
}

type LoginResult struct {
	Token string            `json:"token"`
	User  *model.UserPublic `json:"user"`
}

func (s *UserService) Login(ctx context.Context, input *model.LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", errdefs.ErrAuthentication)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", errdefs.ErrAuthentication)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.activity.Log(ctx, user.Id, "Logged in")
	return &LoginResult{Token: token, User: user.Public()}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.UserPublic, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// ListUsers returns every principal joined with its role name, id
// ascending. Served from cache when a fresh copy exists.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.UserPublic, error) {
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, userListCacheKey); ok {
			var cached []*model.UserPublic
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]*model.UserPublic, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	if s.cache != nil {
		if data, err := json.Marshal(public); err == nil {
			s.cache.Set(ctx, userListCacheKey, data, userListCacheTTL)
		}
	}
	return public, nil
}

// DeleteUser removes a principal. A principal may never delete its own
// record, regardless of role.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	requesterID, ok := ctxdata.GetPrincipalID(ctx)
	if !ok {
		return errdefs.ErrAuthentication
	}
	if requesterID == id {
		return fmt.Errorf("cannot delete own account: %w", errdefs.ErrPermissionDenied)
	}

	if _, err := s.userRepo.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.invalidateList(ctx)
	s.activity.Log(ctx, requesterID, fmt.Sprintf("Deleted user %d", id))
	return nil
}

func (s *UserService) invalidateList(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, userListCacheKey)
	}
}
