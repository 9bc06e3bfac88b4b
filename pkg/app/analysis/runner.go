package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/marketlens/marketlens/pkg/domain/errors"
	"github.com/marketlens/marketlens/pkg/domain/market"
	"github.com/marketlens/marketlens/pkg/infra/analyzer"
	"github.com/marketlens/marketlens/pkg/infra/collector"
)

const (
	minSectorLength = 3
	maxSectorLength = 50
)

//go:generate mockery --name=Runner --dir=. --output=../../../mocks --filename=analysis_runner_mock.go --case=underscore --with-expecter

// Runner sequences one sector analysis: validate input, collect recent news,
// generate the report. Validation runs strictly before any external call so
// bad requests never reach the collector or the provider.
type Runner interface {
	Run(ctx context.Context, sector string) (*market.Report, error)
}

type runner struct {
	logger    *logrus.Logger
	collector collector.Collector
	analyzer  analyzer.Analyzer
	now       func() time.Time
}

func NewRunner(logger *logrus.Logger, c collector.Collector, a analyzer.Analyzer) Runner {
	return &runner{
		logger:    logger,
		collector: c,
		analyzer:  a,
		now:       time.Now,
	}
}

func (r *runner) Run(ctx context.Context, sector string) (*market.Report, error) {
	normalized, err := NormalizeSector(sector)
	if err != nil {
		return nil, err
	}

	articles, err := r.collector.Collect(ctx, normalized)
	if err != nil {
		// Collector faults are equivalent to an empty result set.
		r.logger.WithError(err).WithField("sector", normalized).Warn("collection failed")
		articles = nil
	}
	if len(articles) == 0 {
		return nil, domain.ErrNoData
	}

	analysis := r.analyzer.Analyze(ctx, normalized, articles)
	if analysis.Degraded {
		r.logger.WithFields(logrus.Fields{
			"sector": normalized,
			"cause":  analysis.Cause,
		}).Warn("returning degraded analysis")
	}

	return &market.Report{
		Sector:       normalized,
		Report:       analysis.Report,
		Timestamp:    r.now().UTC().Format(time.RFC3339),
		SourcesCount: len(articles),
		Degraded:     analysis.Degraded,
	}, nil
}

// NormalizeSector lowercases and trims a sector name and enforces the
// 3..50 character bounds on the normalized form.
func NormalizeSector(sector string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(sector))
	if len(normalized) < minSectorLength || len(normalized) > maxSectorLength {
		return "", domain.NewValidationError("sector", "name must be between 3 and 50 characters")
	}
	return normalized, nil
}
