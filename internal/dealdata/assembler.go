package dealdata

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pankajrawal86/lvx-agents/internal/domain"
)

// UnknownDealError is the defined business error for a deal id with no
// backing records. Its text is part of the API contract.
type UnknownDealError struct {
	DealID string
}

func (e *UnknownDealError) Error() string {
	return "No data found for deal ID: " + e.DealID
}

// Assembler builds the flat deal context by merging the deal record, its
// linked startup record, and the deal's key metrics.
type Assembler struct {
	source domain.DealSource
	logger *slog.Logger
}

func NewAssembler(source domain.DealSource, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{source: source, logger: logger}
}

// Build resolves dealID into a merged context. Later merges win on key
// collisions: deal < startup < key metrics.
func (a *Assembler) Build(ctx context.Context, dealID string) (domain.DealContext, error) {
	deals, err := a.source.Query(ctx, "deals", "id", dealID)
	if err != nil {
		return nil, fmt.Errorf("fetch deal %s: %w", dealID, err)
	}
	deal := firstRecord(deals)
	if deal == nil {
		a.logger.Info("no deal record", "dealID", dealID)
		return nil, &UnknownDealError{DealID: dealID}
	}

	dc := domain.DealContext{}
	for k, v := range deal {
		dc[k] = v
	}

	if startupID := dc.Str("startupId"); startupID != "" {
		startups, err := a.source.Query(ctx, "startups", "id", startupID)
		if err != nil {
			return nil, fmt.Errorf("fetch startup %s: %w", startupID, err)
		}
		if startup := firstRecord(startups); startup != nil {
			for k, v := range startup {
				dc[k] = v
			}
			// Agents address the startup by "name"; the startups collection
			// calls it "company".
			if company, ok := startup["company"]; ok {
				dc["name"] = company
			}
		}
	}

	metrics, err := a.source.Query(ctx, "keyMetrics", "dealId", dealID)
	if err != nil {
		return nil, fmt.Errorf("fetch key metrics for %s: %w", dealID, err)
	}
	if km := firstRecord(metrics); km != nil {
		for k, v := range km {
			dc[k] = v
		}
	}

	a.logger.Debug("assembled deal context", "dealID", dealID, "fields", len(dc))
	return dc, nil
}

// firstRecord picks the record under the smallest key, so repeated calls see
// the same record regardless of map iteration order.
func firstRecord(records map[string]domain.Record) domain.Record {
	if len(records) == 0 {
		return nil
	}
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return records[keys[0]]
}
