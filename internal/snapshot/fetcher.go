package snapshot

import (
	"context"

	"github.com/lonestarcare/carewatch/internal/clock"
	facilitydomain "github.com/lonestarcare/carewatch/internal/facility/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	violationWindow  = 10
	inspectionWindow = 5
)

// Fetcher builds the current snapshot for one facility. Lookup failures
// degrade to the sentinel snapshot so a single facility's data trouble
// never aborts a check cycle.
type Fetcher struct {
	facilities facilitydomain.Repository
	clk        clock.Clock
	log        *zap.Logger
}

type FetcherParams struct {
	fx.In

	Facilities facilitydomain.Repository
	Clock      clock.Clock
	Log        *zap.Logger
}

func NewFetcher(p FetcherParams) *Fetcher {
	return &Fetcher{
		facilities: p.Facilities,
		clk:        p.Clock,
		log:        p.Log.Named("snapshot.fetcher"),
	}
}

// Fetch returns the facility's current snapshot, or the sentinel when the
// facility is unknown or any lookup fails.
func (f *Fetcher) Fetch(ctx context.Context, operationNumber string) Snapshot {
	now := f.clk.Now()

	fac, err := f.facilities.FindByOperationNumber(ctx, operationNumber)
	if err != nil {
		f.log.Warn("facility lookup failed",
			zap.String("operation_number", operationNumber),
			zap.Error(err))
		return Sentinel(operationNumber, now)
	}
	if fac == nil {
		return Sentinel(operationNumber, now)
	}

	violations, err := f.facilities.RecentViolations(ctx, operationNumber, violationWindow)
	if err != nil {
		f.log.Warn("violation lookup failed",
			zap.String("operation_number", operationNumber),
			zap.Error(err))
		return Sentinel(operationNumber, now)
	}
	inspections, err := f.facilities.RecentInspections(ctx, operationNumber, inspectionWindow)
	if err != nil {
		f.log.Warn("inspection lookup failed",
			zap.String("operation_number", operationNumber),
			zap.Error(err))
		return Sentinel(operationNumber, now)
	}

	return Snapshot{
		OperationNumber: operationNumber,
		FacilityName:    fac.OperationName,
		Record: Record{
			FieldRating:         fac.Rating,
			FieldCapacity:       float64(fac.TotalCapacity),
			FieldInspections2Yr: float64(fac.Inspections2Yr),
			FieldViolations2Yr:  float64(fac.Violations2Yr),
		},
		Violations:  violations,
		Inspections: inspections,
		ObservedAt:  now,
	}
}
