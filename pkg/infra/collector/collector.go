package collector

import (
	"context"

	"github.com/marketlens/marketlens/pkg/domain/market"
)

//go:generate mockery --name=Collector --dir=. --output=../../../mocks --filename=collector_mock.go --case=underscore --with-expecter

// Collector gathers recent news articles for a market sector. Implementations
// absorb their own transport faults: a failed collection surfaces as an empty
// slice, never as an error the caller has to translate.
type Collector interface {
	Collect(ctx context.Context, sector string) ([]market.Article, error)
}
