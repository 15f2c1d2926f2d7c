package service

import (
	"context"

	"go.uber.org/zap"

	"projecttrack/internal/model"
	"projecttrack/pkg/logging"
)

// ActivityService owns the append-only audit trail. Entries land in the
// document store; when a producer is configured they also fan out to the
// audit topic. Neither write may fail the business operation that logged.
type ActivityService struct {
	activityRepo ActivityRepository
	producer     EventProducer
	topic        string
}

func NewActivityService(activityRepo ActivityRepository, producer EventProducer, topic string) *ActivityService {
	return &ActivityService{activityRepo: activityRepo, producer: producer, topic: topic}
}

func (s *ActivityService) Log(ctx context.Context, principalID int64, action string) {
	if err := s.activityRepo.Append(ctx, principalID, action); err != nil {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Error(ctx, "failed to append activity entry",
				zap.Int64("principal_id", principalID),
				zap.Error(err),
			)
		}
	}

	if s.producer == nil {
		return
	}
	event := map[string]any{
		"principal_id": principalID,
		"action":       action,
	}
	if err := s.producer.Send(ctx, s.topic, event); err != nil {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "failed to publish audit event", zap.Error(err))
		}
	}
}

func (s *ActivityService) ListLogs(ctx context.Context, req model.PageRequest) (*model.Page[*model.ActivityEntry], error) {
	req = req.Normalize(10)

	total, err := s.activityRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.activityRepo.Page(ctx, req.Skip(), req.PageSize)
	if err != nil {
		return nil, err
	}

	return model.NewPage(entries, total, req), nil
}
