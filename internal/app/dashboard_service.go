package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/atelier-studio/atelier-service/internal/domain"
	"github.com/atelier-studio/atelier-service/internal/ports"
)

// Dashboard sizes and windows.
const (
	HomeRecentOrders      = 3
	DefaultRecentQuotes   = 4
	AgendaSize            = 2
	RevenueWindow         = 30 * 24 * time.Hour
	homeCacheKeyPrefix    = "dashboard:home:"
	summaryCacheKeyPrefix = "dashboard:summary:"
)

// DashboardService builds the home and dashboard screens.
type DashboardService struct {
	repo     ports.DashboardRepository
	cache    ports.Cache
	cacheTTL time.Duration
	flags    ports.FeatureFlags
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// DashboardServiceConfig holds the dashboard service dependencies.
type DashboardServiceConfig struct {
	Repo ports.DashboardRepository

	// Cache is optional. Results live for CacheTTL when the dashboard
	// cache flag is on.
	Cache    ports.Cache
	CacheTTL time.Duration

	Flags ports.FeatureFlags

	// Location decides what "today" means for the agenda. Defaults to UTC.
	Location *time.Location
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewDashboardService creates a dashboard service. It panics without a repository.
func NewDashboardService(cfg DashboardServiceConfig) *DashboardService {
	if cfg.Repo == nil {
		panic("app: dashboard service requires a repository")
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &DashboardService{
		repo:     cfg.Repo,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		flags:    cfg.Flags,
		loc:      cfg.Location,
		now:      cfg.Now,
		logger:   cfg.Logger.With(slog.String("component", "app.DashboardService")),
	}
}

// Home returns the recent orders and quick stats of a user.
func (s *DashboardService) Home(ctx context.Context, userID string) (*domain.HomeSummary, error) {
	return cached(ctx, s, homeCacheKeyPrefix+userID, func(ctx context.Context) (*domain.HomeSummary, error) {
		orders, stats, err := Parallel2(ctx,
			func(ctx context.Context) ([]domain.Order, error) {
				return s.repo.ListRecentOrders(ctx, userID, HomeRecentOrders)
			},
			func(ctx context.Context) ([]domain.QuickStat, error) {
				return s.quickStats(ctx, userID)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("loading home summary: %w", err)
		}

		return &domain.HomeSummary{RecentOrders: orders, QuickStats: stats}, nil
	})
}

func (s *DashboardService) quickStats(ctx context.Context, userID string) ([]domain.QuickStat, error) {
	since := s.now().Add(-RevenueWindow)

	revenue, active, happy, err := Parallel3(ctx,
		func(ctx context.Context) (decimal.Decimal, error) {
			return s.repo.SumApprovedQuoteValue(ctx, userID, since)
		},
		func(ctx context.Context) (int, error) {
			return s.repo.CountActiveOrders(ctx, userID)
		},
		func(ctx context.Context) (int, error) {
			return s.repo.CountDistinctClientsWithStatus(ctx, userID, domain.StatusFinished)
		},
	)
	if err != nil {
		return nil, err
	}

	return []domain.QuickStat{
		{Label: domain.StatMonthlyRevenue, Value: domain.FormatBRL(revenue), Icon: domain.IconTrendingUp},
		{Label: domain.StatActiveOrders, Value: strconv.Itoa(active), Icon: domain.IconScissors},
		{Label: domain.StatHappyClients, Value: strconv.Itoa(happy), Icon: domain.IconHeart},
	}, nil
}

// Summary returns the recent quotes and today's agenda of a user.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	return cached(ctx, s, summaryCacheKeyPrefix+userID, func(ctx context.Context) (*domain.DashboardSummary, error) {
		limit := DefaultRecentQuotes
		if s.flags != nil {
			limit = s.flags.GetInt(ctx, ports.FlagRecentQuotesLimit, DefaultRecentQuotes)
		}

		today := s.now().In(s.loc)

		quotes, orders, err := Parallel2(ctx,
			func(ctx context.Context) ([]domain.Quote, error) {
				return s.repo.ListRecentQuotes(ctx, userID, max(limit, 1))
			},
			func(ctx context.Context) ([]domain.Order, error) {
				return s.repo.ListOrdersDueOn(ctx, userID, today, AgendaSize)
			},
		)
		if err != nil {
			return nil, fmt.Errorf("loading dashboard summary: %w", err)
		}

		summary := &domain.DashboardSummary{
			RecentQuotes: make([]domain.RecentQuote, 0, len(quotes)),
			Agenda:       make([]domain.AgendaEntry, 0, len(orders)),
		}

		for _, q := range quotes {
			summary.RecentQuotes = append(summary.RecentQuotes, s.recentQuote(q))
		}

		for _, o := range orders {
			summary.Agenda = append(summary.Agenda, s.agendaEntry(o))
		}

		return summary, nil
	})
}

func (s *DashboardService) recentQuote(q domain.Quote) domain.RecentQuote {
	return domain.RecentQuote{
		ID:      q.ID,
		Client:  orDefault(q.ClientName, domain.FallbackClientName),
		Service: orDefault(q.Description, domain.FallbackQuoteTitle),
		Value:   domain.FormatBRL(q.TotalValue),
		Amount:  q.TotalValue,
		Status:  q.Status,
		Tone:    domain.ToneForStatus(q.Status),
		Date:    domain.FormatDateBR(q.CreatedAt.In(s.loc)),
		Created: q.CreatedAt,
	}
}

func (s *DashboardService) agendaEntry(o domain.Order) domain.AgendaEntry {
	return domain.AgendaEntry{
		ID:      o.ID,
		Client:  orDefault(o.ClientName, domain.FallbackClientName),
		Service: orDefault(o.ProductName, domain.FallbackServiceName),
		Time:    domain.FormatTimeBR(o.DueDate.In(s.loc)),
	}
}

// Invalidate drops the cached screens of a user.
func (s *DashboardService) Invalidate(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}

	if err := s.cache.Delete(ctx, homeCacheKeyPrefix+userID, summaryCacheKeyPrefix+userID); err != nil {
		return fmt.Errorf("invalidating dashboard cache: %w", err)
	}

	return nil
}

func (s *DashboardService) cacheEnabled(ctx context.Context) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}

	return s.flags == nil || s.flags.IsEnabled(ctx, ports.FlagDashboardCache, true)
}

// cached serves key from the cache or loads and stores it. Cache failures
// only cost a reload.
func cached[T any](ctx context.Context, s *DashboardService, key string, load func(context.Context) (*T, error)) (*T, error) {
	if !s.cacheEnabled(ctx) {
		return load(ctx)
	}

	raw, err := s.cache.Get(ctx, key)

	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
			return &v, nil
		}

		s.logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	case !errors.Is(err, domain.ErrNotFound):
		s.logger.WarnContext(ctx, "dashboard cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "dashboard cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return v, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
