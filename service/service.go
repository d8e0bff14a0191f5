// Package service 是面向调用方的编排层：拉取画像/目录/日志，
// 过滤候选，调用混合引擎，并记录被降级的引擎错误。
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/glowteam/glowrec/core"
	"github.com/glowteam/glowrec/filter"
	"github.com/glowteam/glowrec/hybrid"
)

// RecommendationService 把存储、过滤链与混合引擎拼装成完整的推荐入口。
type RecommendationService struct {
	catalog      core.CatalogStore
	profiles     core.ProfileStore
	interactions core.InteractionStore
	blender      *hybrid.Blender
	filters      *filter.Chain
	log          zerolog.Logger
}

// Option 配置 RecommendationService。
type Option func(*RecommendationService)

// WithLogger 设置日志器，默认 Nop。
func WithLogger(log zerolog.Logger) Option {
	return func(s *RecommendationService) { s.log = log }
}

// WithFilters 设置候选过滤链，nil 表示不过滤。
func WithFilters(chain *filter.Chain) Option {
	return func(s *RecommendationService) { s.filters = chain }
}

// New 创建推荐服务。
func New(
	catalog core.CatalogStore,
	profiles core.ProfileStore,
	interactions core.InteractionStore,
	blender *hybrid.Blender,
	opts ...Option,
) *RecommendationService {
	s := &RecommendationService{
		catalog:      catalog,
		profiles:     profiles,
		interactions: interactions,
		blender:      blender,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend 为用户生成推荐榜单。
//
// 画像不存在按空结果处理，不报错；单引擎降级记 warn 日志；
// 两个引擎都空时向上返回 core.ErrNoRecommendations。
func (s *RecommendationService) Recommend(
	ctx context.Context,
	userID string,
	opts hybrid.Options,
) ([]*core.ScoredItem, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if core.IsStoreNotFound(err) {
			s.log.Debug().Str("user_id", userID).Msg("profile not found, returning empty result")
			return []*core.ScoredItem{}, nil
		}
		return nil, err
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	products = s.filters.Apply(ctx, profile, products)

	events, err := s.interactions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	items, report, err := s.blender.Recommend(ctx, userID, profile, products, events, opts)
	if report != nil && report.Degraded() {
		ev := s.log.Warn().Str("user_id", userID).
			Int("content_count", report.ContentCount).
			Int("collab_count", report.CollabCount)
		if report.ContentErr != nil {
			ev = ev.AnErr("content_err", report.ContentErr)
		}
		if report.CollabErr != nil {
			ev = ev.AnErr("collab_err", report.CollabErr)
		}
		ev.Msg("engine degraded")
	}
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("user_id", userID).Int("count", len(items)).Msg("recommendations generated")
	return items, nil
}

// RecordInteraction 校验并追加一条交互事件。
func (s *RecommendationService) RecordInteraction(ctx context.Context, ev core.InteractionEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if err := s.interactions.Append(ctx, ev); err != nil {
		return err
	}
	s.log.Debug().
		Str("user_id", ev.UserID).
		Str("product_id", string(ev.ProductID)).
		Str("type", string(ev.Type)).
		Msg("interaction recorded")
	return nil
}

// UpsertProduct 校验并写入商品。
func (s *RecommendationService) UpsertProduct(ctx context.Context, p *core.Product) error {
	return s.catalog.PutProduct(ctx, p)
}

// SaveProfile 校验并写入用户画像。
func (s *RecommendationService) SaveProfile(ctx context.Context, p *core.UserProfile) error {
	return s.profiles.PutProfile(ctx, p)
}

// UpdateWeights 按外部精度指标调整引擎权重，返回调整后的快照。
func (s *RecommendationService) UpdateWeights(m hybrid.PrecisionMetrics) hybrid.EngineWeights {
	w := s.blender.UpdateWeights(m)
	s.log.Info().
		Float64("content", w.Content).
		Float64("collaborative", w.Collaborative).
		Msg("engine weights rebalanced")
	return w
}
