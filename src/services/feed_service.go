package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/processors"
	"github.com/username/policyfeed/src/utils"
)

const isoMillis = "2006-01-02T15:04:05.000Z"

type feedServiceImpl struct {
	collector CollectionService
	filter    processors.FilterProcessor
	stats     processors.StatisticsProcessor
	now       func() time.Time
}

// NewFeedService wires the feed pipeline. now may be nil, in which case the
// wall clock is used.
func NewFeedService(
	collector CollectionService,
	filter processors.FilterProcessor,
	stats processors.StatisticsProcessor,
	now func() time.Time,
) FeedService {
	if now == nil {
		now = time.Now
	}
	return &feedServiceImpl{
		collector: collector,
		filter:    filter,
		stats:     stats,
		now:       now,
	}
}

// ParseFeedQuery reads feed parameters from a query string. Invalid values
// fall back to defaults instead of failing the request.
func ParseFeedQuery(values url.Values) models.FeedQuery {
	q := models.FeedQuery{
		Page:       models.DefaultPage,
		Limit:      models.DefaultLimit,
		PolicyType: strings.TrimSpace(values.Get("policyType")),
		ClientType: strings.TrimSpace(values.Get("clientType")),
		Search:     strings.TrimSpace(values.Get("search")),
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil {
		switch {
		case limit < 1:
			q.Limit = 1
		case limit > models.MaxLimit:
			q.Limit = models.MaxLimit
		default:
			q.Limit = limit
		}
	}
	if source := models.Source(values.Get("source")); source.IsValid() {
		q.Source = source
	}
	q.MinAmount = parseAmount(values.Get("minAmount"))
	q.MaxAmount = parseAmount(values.Get("maxAmount"))
	return q
}

func parseAmount(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func (s *feedServiceImpl) Query(ctx context.Context, q models.FeedQuery) (resp *models.FeedResponse, err error) {
	defer recoverFeed(&err)

	started := time.Now()
	now := s.now().UTC()
	collected := s.collect(ctx, q)

	filtered := s.filter.Apply(collected.Policies, q.Filters())
	sorted := s.stats.SortByStartDateDesc(filtered)
	page, pagination := s.stats.Paginate(sorted, q.Page, q.Limit)

	statistics := s.stats.Summarize(filtered)
	statistics.ActivePolicies = s.stats.SummarizeActive(collected.Policies, now)

	total := len(collected.Policies)
	var activePct float64
	if total > 0 {
		activePct = utils.RoundFloat(float64(statistics.ActivePolicies.TotalActivePolicies)/float64(total)*100, 2)
	}

	logger.FromContext(ctx).Info("Built standardized feed",
		"total", total, "filtered", len(filtered), "page", pagination.Page,
		"limit", pagination.Limit, "duration", time.Since(started))

	return &models.FeedResponse{
		Success:    true,
		Data:       page,
		Pagination: pagination,
		Statistics: statistics,
		Metadata: models.Metadata{
			LastUpdated:              now.Format(isoMillis),
			TotalRecords:             total,
			ActivePoliciesPercentage: activePct,
			DataQuality:              s.stats.DataQuality(collected.Policies),
			Sources:                  collected.Sources,
		},
		Message: "Standardized broker data retrieved successfully",
	}, nil
}

func (s *feedServiceImpl) Policies(ctx context.Context, q models.FeedQuery) (policies []models.CanonicalPolicy, err error) {
	defer recoverFeed(&err)

	collected := s.collect(ctx, q)
	return s.stats.SortByStartDateDesc(s.filter.Apply(collected.Policies, q.Filters())), nil
}

func (s *feedServiceImpl) collect(ctx context.Context, q models.FeedQuery) CollectionResult {
	if q.Source != "" {
		return s.collector.Collect(ctx, q.Source)
	}
	return s.collector.Collect(ctx)
}

func recoverFeed(err *error) {
	if r := recover(); r != nil {
		logger.L.Error("Recovered panic while building feed", "panic", r)
		*err = fmt.Errorf("%w: %v", ErrFeedFailed, r)
	}
}
