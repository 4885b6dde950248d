// Package app composes the stability analysis pipeline behind one service.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/keel/internal/adapters/cache"
	"github.com/okian/keel/internal/domain/enumerate"
	"github.com/okian/keel/internal/domain/matrix"
	"github.com/okian/keel/internal/domain/model"
	"github.com/okian/keel/internal/domain/report"
	"github.com/okian/keel/internal/domain/stability"
	"github.com/okian/keel/internal/domain/utility"
	"github.com/okian/keel/pkg/logger"
	"github.com/okian/keel/pkg/metrics"
)

// Default analyzer configuration constants.
const (
	defaultParallelism = 4
)

// Analyzer runs the full pipeline: utility matrix construction, beneficial
// swap enumeration, distance aggregation, classification, prediction, and
// report assembly. Every Analyze call is a pure function of its snapshot and
// strategy; the only optional state is the caller-supplied report cache.
type Analyzer struct {
	epsilon     float64
	thresholds  stability.Thresholds
	prediction  stability.Prediction
	topK        int
	notable     int
	parallelism int
	detailCap   int
	approximate bool

	cache cache.Store
	clock func() time.Time

	builder    *matrix.Builder
	enumerator *enumerate.Enumerator
	assembler  *report.Assembler

	// Logging
	logger logger.Logger
}

// New constructs an Analyzer with default configuration.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		epsilon:     0, // 0 keeps the enumerator default
		thresholds:  stability.DefaultThresholds(),
		prediction:  stability.DefaultPrediction(),
		parallelism: defaultParallelism,
	}

	// Apply all options
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logger.Get().Named("analyzer")
	}

	builderOpts := []matrix.Option{matrix.WithLogger(a.logger)}
	a.builder = matrix.NewBuilder(builderOpts...)

	enumOpts := []enumerate.Option{
		enumerate.WithParallelism(a.parallelism),
		enumerate.WithDetailCap(a.detailCap),
		enumerate.WithApproximateCounts(a.approximate),
	}
	if a.epsilon > 0 {
		enumOpts = append(enumOpts, enumerate.WithEpsilon(a.epsilon))
	}
	a.enumerator = enumerate.NewEnumerator(enumOpts...)

	asmOpts := []report.Option{}
	if a.topK > 0 {
		asmOpts = append(asmOpts, report.WithTopK(a.topK))
	}
	if a.notable > 0 {
		asmOpts = append(asmOpts, report.WithNotableThreshold(a.notable))
	}
	if a.clock != nil {
		asmOpts = append(asmOpts, report.WithClock(a.clock))
	}
	a.assembler = report.NewAssembler(asmOpts...)

	return a
}

// Analyze scores one schedule snapshot against one utility strategy.
//
// Validation failures and strategy evaluation errors abort the call; a
// cancelled context yields enumerate.ErrCancelled, never a partial report.
func (a *Analyzer) Analyze(ctx context.Context, snap *model.Snapshot, strategy utility.Strategy) (*report.StabilityReport, error) {
	start := time.Now()

	if snap == nil {
		metrics.RecordAnalysisFailed()
		return nil, fmt.Errorf("%w: nil snapshot", model.ErrInvalidSnapshot)
	}
	if strategy == nil {
		metrics.RecordAnalysisFailed()
		return nil, errors.New("nil utility strategy")
	}
	if err := snap.Validate(); err != nil {
		metrics.RecordAnalysisFailed()
		return nil, err
	}

	var key string
	if a.cache != nil {
		key = snap.Fingerprint() + "|" + strategy.Name()
		if rpt, ok := a.cache.Get(ctx, key); ok {
			metrics.RecordCacheHit()
			a.logger.Debug(ctx, "report cache hit", logger.String("strategy", strategy.Name()))
			return rpt, nil
		}
		metrics.RecordCacheMiss()
	}

	m, buildWarnings, err := a.builder.Build(ctx, snap, strategy)
	if err != nil {
		metrics.RecordAnalysisFailed()
		return nil, err
	}

	enum, err := a.enumerator.Enumerate(ctx, snap, m)
	if err != nil {
		if errors.Is(err, enumerate.ErrCancelled) {
			metrics.RecordAnalysisCancelled()
		} else {
			metrics.RecordAnalysisFailed()
		}
		return nil, err
	}

	distance := stability.Distance(enum.Total, len(snap.Assignments))
	tier := a.thresholds.Classify(distance)

	rpt := a.assembler.Assemble(report.Inputs{
		Snapshot:      snap,
		Enumeration:   enum,
		Distance:      distance,
		Tier:          tier,
		IsStable:      a.thresholds.IsStable(distance),
		Predicted:     a.prediction.PredictSwaps(distance, len(snap.Assignments)),
		BuildWarnings: buildWarnings,
		StableBelow:   a.thresholds.Stable,
	})

	metrics.RecordAnalysisCompleted(string(tier))
	metrics.RecordAnalysisDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateLastDistance(distance)
	metrics.UpdateLastRosterSize(len(snap.Participants))
	metrics.UpdateLastAssignmentCount(len(snap.Assignments))

	a.logger.Info(ctx, "analysis completed",
		logger.String("strategy", strategy.Name()),
		logger.Float64("nashDistance", rpt.NashDistance),
		logger.String("tier", string(rpt.StabilityLevel)),
		logger.Int("beneficialDeviations", rpt.BeneficialDeviations),
		logger.Int("predictedSwapRequests", rpt.PredictedSwapRequests),
		logger.Duration("elapsed", time.Since(start)),
	)

	if a.cache != nil {
		a.cache.Put(ctx, key, rpt)
	}

	return rpt, nil
}
