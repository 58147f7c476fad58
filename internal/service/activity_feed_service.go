package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/cache"
	"github.com/skillbridge/mobile-gateway/internal/dto"
	"github.com/skillbridge/mobile-gateway/internal/models"
	"github.com/skillbridge/mobile-gateway/internal/session"
)

// ActivityFeedService exposes the recent activity stream of the caller's classes.
type ActivityFeedService interface {
	List(ctx context.Context, sess session.Session, req dto.ActivityFeedRequest) (dto.ActivityFeedResponse, error)
}

type activityFeedService struct {
	platform FeedGateway
	cache    *cache.RedisCache
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewActivityFeedService builds the activity feed service. feedCache may be nil.
func NewActivityFeedService(gateway FeedGateway, feedCache *cache.RedisCache, ttl time.Duration, logger zerolog.Logger) ActivityFeedService {
	if ttl <= 0 {
		ttl = 45 * time.Second
	}
	return &activityFeedService{
		platform: gateway,
		cache:    feedCache,
		ttl:      ttl,
		logger:   logger.With().Str("component", "activity_feed_service").Logger(),
	}
}

func (s *activityFeedService) List(ctx context.Context, sess session.Session, req dto.ActivityFeedRequest) (dto.ActivityFeedResponse, error) {
	page := maxInt(req.Page, 1)
	pageSize := clampPageSize(req.PageSize)

	cacheKey := fmt.Sprintf("feed:v1:%s:%d:%d", sess.UserID, page, pageSize)

	var raw models.ActivityPage
	cacheHit := s.cache != nil && s.cache.GetJSON(ctx, cacheKey, &raw)
	if !cacheHit {
		fetched, err := s.platform.Feed(ctx, sess.Token, page, pageSize)
		if err != nil {
			return dto.ActivityFeedResponse{}, err
		}
		raw = fetched
		if s.cache != nil {
			s.cache.SetJSON(ctx, cacheKey, raw, s.ttl)
		}
	}

	items := make([]dto.ActivityFeedItem, 0, len(raw.Items))
	for _, entry := range raw.Items {
		items = append(items, dto.NewActivityFeedItem(entry))
	}

	pagination := dto.PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: raw.Total,
		TotalPages: int(math.Ceil(float64(raw.Total) / float64(pageSize))),
	}
	if pagination.TotalPages == 0 {
		pagination.TotalPages = 1
	}

	return dto.ActivityFeedResponse{Items: items, Pagination: pagination, CacheHit: cacheHit}, nil
}

func clampPageSize(size int) int {
	if size <= 0 {
		return 20
	}
	if size > 100 {
		return 100
	}
	return size
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
