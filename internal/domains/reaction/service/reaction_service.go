package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"wishlist-backend/internal/domains/reaction"
	"wishlist-backend/internal/domains/wishlist"
	"wishlist-backend/internal/shared"
	"wishlist-backend/pkg/cache"
	"wishlist-backend/pkg/metrics"
)

type reactionService struct {
	repo    reaction.Repository
	cache   cache.Cache
	metrics *metrics.Metrics
}

func NewReactionService(repo reaction.Repository, c cache.Cache, m *metrics.Metrics) reaction.Service {
	return &reactionService{repo: repo, cache: c, metrics: m}
}

// React ghi nhận heart/thumbs_up của khách. Reaction trùng trả về
// Recorded=false, không phải lỗi.
func (s *reactionService) React(ctx context.Context, itemID uuid.UUID, req reaction.ReactRequest, clientIP, userAgent string) (*reaction.ReactResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	in := &reaction.Interaction{
		ID:          uuid.New(),
		ItemID:      itemID,
		Kind:        req.Type,
		Fingerprint: reaction.Fingerprint(clientIP, userAgent),
		IPAddress:   clientIP,
		UserAgent:   userAgent,
	}
	out, err := s.repo.Record(ctx, in)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveReaction(string(req.Type), out.Recorded)
	if out.Recorded {
		wishlist.InvalidatePublic(ctx, s.cache, out.WishlistSlug)
	}

	log.Debug().
		Str("item_id", itemID.String()).
		Str("type", string(req.Type)).
		Bool("recorded", out.Recorded).
		Msg("Reaction processed")

	return &reaction.ReactResponse{
		ItemID:   itemID,
		Type:     req.Type,
		Recorded: out.Recorded,
		Counts:   out.Counts,
	}, nil
}

// Recount sửa counter bị lệch so với item_interactions.
// Cache public không bị xóa ở đây, entry tự hết hạn theo TTL.
func (s *reactionService) Recount(ctx context.Context, p shared.RecountReactionsPayload) (int64, error) {
	n, err := s.repo.Recount(ctx, p.WishlistID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Warn().Int64("items", n).Msg("Reaction counters drifted and were repaired")
	}
	return n, nil
}
