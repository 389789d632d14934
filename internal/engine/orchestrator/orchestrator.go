// Package orchestrator runs refresh cycles: it reloads the registry and caches, resolves
// coordinates and freshness per system, persists the caches, plans the route and publishes
// an immutable snapshot.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/resolver"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/route"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// State is the lifecycle state of the orchestrator.
type State int32

const (
	// Idle means no cycle is in flight.
	Idle State = iota
	// Running means a cycle is in flight.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Rejection reasons reported to metrics.
const (
	RejectCooldown   = "cooldown"
	RejectConcurrent = "concurrent"
	RejectLocked     = "locked"
)

// Settings are the fixed parameters of the orchestrator.
type Settings struct {
	Threshold          time.Duration
	MinRefreshInterval time.Duration
	PointCap           int
}

// CycleOptions adjust a single cycle.
type CycleOptions struct {
	// Threshold overrides the staleness threshold when positive.
	Threshold time.Duration
}

// Orchestrator sequences refresh cycles. At most one cycle runs at a time; further
// starts are rejected, never queued.
type Orchestrator struct {
	registry ports.SystemRegistry
	store    ports.CacheStore
	resolver *resolver.Resolver
	tracker  *staleness.Tracker
	logger   ports.Logger
	settings Settings

	lock    ports.RefreshLock
	stamp   ports.CycleStamp
	process ports.ProcessDetector
	tracer  ports.Tracer
	metrics ports.Metrics
	now     func() time.Time

	mu        sync.Mutex
	state     State
	lastStart time.Time

	results chan *domain.RefreshResult
	latest  atomic.Pointer[domain.RefreshResult]
	workers sync.WaitGroup
}

// New creates an Orchestrator.
func New(
	registry ports.SystemRegistry,
	store ports.CacheStore,
	res *resolver.Resolver,
	tracker *staleness.Tracker,
	logger ports.Logger,
	settings Settings,
) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		store:    store,
		resolver: res,
		tracker:  tracker,
		logger:   logger,
		settings: settings,
		tracer:   nopTracer{},
		now:      time.Now,
		results:  make(chan *domain.RefreshResult, 1),
	}
}

// WithLock adds a cross-process lock held for the duration of each cycle.
func (o *Orchestrator) WithLock(lock ports.RefreshLock) *Orchestrator {
	o.lock = lock
	return o
}

// WithCycleStamp shares the last cycle start with other processes, so the
// minimum refresh interval also gates cycles started elsewhere.
func (o *Orchestrator) WithCycleStamp(stamp ports.CycleStamp) *Orchestrator {
	o.stamp = stamp
	return o
}

// WithProcessDetector reports the companion process state on every snapshot.
func (o *Orchestrator) WithProcessDetector(p ports.ProcessDetector) *Orchestrator {
	o.process = p
	return o
}

// WithTracer sets the tracer used for cycle and system spans.
func (o *Orchestrator) WithTracer(t ports.Tracer) *Orchestrator {
	o.tracer = t
	return o
}

// WithMetrics records cycles and rejections.
func (o *Orchestrator) WithMetrics(m ports.Metrics) *Orchestrator {
	o.metrics = m
	return o
}

// WithClock replaces the clock used for the gate and the staleness checks.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastStart returns the start time of the most recent accepted cycle.
func (o *Orchestrator) LastStart() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastStart
}

// Results delivers published snapshots. An unread snapshot is replaced by a newer one.
func (o *Orchestrator) Results() <-chan *domain.RefreshResult {
	return o.results
}

// Latest returns the most recently published snapshot, or nil.
func (o *Orchestrator) Latest() *domain.RefreshResult {
	return o.latest.Load()
}

// RunCycle runs one cycle on the calling goroutine and returns its snapshot.
// Cancelling ctx stops the cycle between systems; the partial snapshot is still
// persisted and published, with Interrupted set.
func (o *Orchestrator) RunCycle(ctx context.Context, opts CycleOptions) (*domain.RefreshResult, error) {
	startedAt, err := o.begin()
	if err != nil {
		return nil, err
	}
	defer o.release()

	result := o.cycle(ctx, opts, startedAt)
	o.publish(result)
	return result, nil
}

// StartCycle checks the gate and runs the cycle on a worker goroutine.
// The snapshot is delivered on Results. A rejection is returned immediately.
func (o *Orchestrator) StartCycle(ctx context.Context, opts CycleOptions) error {
	startedAt, err := o.begin()
	if err != nil {
		return err
	}

	o.workers.Add(1)
	go func() {
		defer o.workers.Done()
		defer o.release()
		o.publish(o.cycle(ctx, opts, startedAt))
	}()
	return nil
}

// Wait blocks until cycles started with StartCycle have finished.
func (o *Orchestrator) Wait() {
	o.workers.Wait()
}

func (o *Orchestrator) begin() (time.Time, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	if last := o.sharedLastStart(); !last.IsZero() {
		if remaining := o.settings.MinRefreshInterval - now.Sub(last); remaining > 0 {
			o.observeRejection(RejectCooldown)
			return time.Time{}, domain.NewCooldownError(remaining)
		}
	}

	if o.state == Running {
		o.observeRejection(RejectConcurrent)
		return time.Time{}, domain.ErrConcurrentRefreshRejected
	}

	if o.lock != nil {
		ok, err := o.lock.TryLock()
		if err != nil {
			return time.Time{}, zerr.Wrap(err, domain.ErrLockFailed.Error())
		}
		if !ok {
			o.observeRejection(RejectLocked)
			return time.Time{}, zerr.Wrap(domain.ErrConcurrentRefreshRejected, "refresh running in another process")
		}
	}

	o.state = Running
	o.lastStart = now
	if o.stamp != nil {
		if err := o.stamp.MarkStart(now); err != nil {
			o.logger.Warn(fmt.Sprintf("record refresh start: %v", err))
		}
	}
	return now, nil
}

// sharedLastStart returns the later of this process's last start and the recorded one.
// Callers hold o.mu.
func (o *Orchestrator) sharedLastStart() time.Time {
	last := o.lastStart
	if o.stamp == nil {
		return last
	}
	recorded, err := o.stamp.LastStart()
	if err != nil {
		o.logger.Warn(fmt.Sprintf("read last refresh start: %v", err))
		return last
	}
	if recorded.After(last) {
		return recorded
	}
	return last
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.lock != nil {
		if err := o.lock.Unlock(); err != nil {
			o.logger.Warn(fmt.Sprintf("release refresh lock: %v", err))
		}
	}
	o.state = Idle
}

func (o *Orchestrator) publish(result *domain.RefreshResult) {
	o.latest.Store(result)
	select {
	case <-o.results:
	default:
	}
	select {
	case o.results <- result:
	default:
	}
}

func (o *Orchestrator) observeRejection(reason string) {
	if o.metrics != nil {
		o.metrics.ObserveRejection(reason)
	}
}

// cycleState is the working set of one cycle. It is owned by the cycle goroutine.
type cycleState struct {
	registry  *domain.Registry
	coords    domain.CoordinateCache
	fresh     domain.FreshnessCache
	threshold time.Duration
	result    *domain.RefreshResult
	attention []string
}

func (o *Orchestrator) cycle(ctx context.Context, opts CycleOptions, startedAt time.Time) *domain.RefreshResult {
	threshold := o.settings.Threshold
	if opts.Threshold > 0 {
		threshold = opts.Threshold
	}

	ctx, span := o.tracer.Start(ctx, "refresh", ports.WithAttribute("edppm.threshold", threshold.String()))
	defer span.End()

	cs := &cycleState{
		registry:  o.loadRegistry(ctx),
		coords:    o.loadCoordinates(),
		fresh:     o.loadFreshness(),
		threshold: threshold,
		result: &domain.RefreshResult{
			Coordinates: make(map[string]domain.Coordinate),
			Threshold:   threshold,
			StartedAt:   startedAt,
		},
	}

	for name := range cs.registry.All() {
		if !cs.result.Interrupted && ctx.Err() != nil {
			cs.result.Interrupted = true
			o.logger.Warn("refresh interrupted, remaining systems use cached data")
		}
		if cs.result.Interrupted {
			o.classifyCached(name, cs)
			continue
		}
		o.processSystem(ctx, name, cs)
	}

	result := cs.result
	if err := o.persist(cs.coords, cs.fresh); err != nil {
		result.PersistErr = err.Error()
		span.RecordError(err)
		o.logger.Error(err)
	}

	result.Current = nonNil(result.Current)
	result.Outdated = nonNil(result.Outdated)
	result.Unknown = nonNil(result.Unknown)
	result.Missing = nonNil(result.Missing)
	result.Route = nonNil(route.Optimize(cs.attention, result.Coordinates, o.settings.PointCap))
	result.RouteDistance = route.Length(result.Route, result.Coordinates)

	if o.process != nil {
		result.CompanionRunning = o.process.Running(context.WithoutCancel(ctx))
	}
	result.CompletedAt = o.now()

	span.SetAttribute("edppm.current", len(result.Current))
	span.SetAttribute("edppm.outdated", len(result.Outdated))
	span.SetAttribute("edppm.unknown", len(result.Unknown))
	span.SetAttribute("edppm.interrupted", result.Interrupted)

	if o.metrics != nil {
		o.metrics.ObserveCycle(result, result.CompletedAt.Sub(startedAt))
	}
	o.logger.Debug(fmt.Sprintf(
		"refresh complete: %d current, %d outdated, %d unknown, %d routed",
		len(result.Current), len(result.Outdated), len(result.Unknown), len(result.Route),
	))
	return result
}

func (o *Orchestrator) processSystem(ctx context.Context, name string, cs *cycleState) {
	ctx, span := o.tracer.Start(ctx, name)
	defer span.End()

	counters := &cs.result.Counters
	coord, outcome := o.resolver.Resolve(ctx, name, cs.registry, cs.coords)
	switch outcome {
	case resolver.Cached:
		counters.CoordinatesCached++
	case resolver.FromHint:
		counters.CoordinatesFromHint++
	case resolver.Fetched:
		counters.CoordinatesFetched++
	case resolver.Failed:
		counters.CoordinateFailures++
		span.RecordError(zerr.With(domain.ErrCoordinatesNotFound, "system", name))
	}
	span.SetAttribute(ports.AttrCoordinates, outcome.String())

	check := o.tracker.Check(ctx, name, cs.fresh[name], o.now(), cs.threshold)
	switch {
	case check.Decision == staleness.SkipCooldown:
		counters.FreshnessSkipped++
	case check.Decision == staleness.FetchNow && check.Err != nil:
		counters.FreshnessFailures++
		span.RecordError(check.Err)
	case check.Decision == staleness.FetchNow:
		counters.FreshnessFetched++
	}
	if check.Record.HasInfo() || !check.Record.LastChecked.IsZero() {
		cs.fresh[name] = check.Record
	}
	span.SetAttribute(ports.AttrDecision, check.Decision.String())
	span.SetAttribute(ports.AttrClass, check.Class.String())

	cs.record(name, coord, outcome != resolver.Failed, check.Class)
}

// classifyCached classifies name from what is already known, without network access.
func (o *Orchestrator) classifyCached(name string, cs *cycleState) {
	rec, ok := cs.coords[name]
	coord := rec.Coordinate
	if !ok {
		coord, ok = cs.registry.Hint(name)
	}
	cs.record(name, coord, ok, staleness.Classify(cs.fresh[name], o.now(), cs.threshold))
}

func (cs *cycleState) record(name string, coord domain.Coordinate, known bool, class domain.Classification) {
	r := cs.result
	if known {
		r.Coordinates[name] = coord
	}

	switch class {
	case domain.Current:
		r.Current = append(r.Current, name)
	case domain.Outdated:
		r.Outdated = append(r.Outdated, name)
	default:
		r.Unknown = append(r.Unknown, name)
	}

	if class.NeedsAttention() {
		if known {
			cs.attention = append(cs.attention, name)
		} else {
			r.Missing = append(r.Missing, name)
		}
	}
}

func (o *Orchestrator) loadRegistry(ctx context.Context) *domain.Registry {
	reg, err := o.registry.Load(ctx)
	if err != nil {
		o.logger.Warn(fmt.Sprintf("registry unavailable, no systems tracked this cycle: %v", err))
		return domain.NewRegistry(nil, nil)
	}
	return reg
}

func (o *Orchestrator) loadCoordinates() domain.CoordinateCache {
	cache, err := o.store.LoadCoordinates()
	if err != nil {
		o.logger.Warn(fmt.Sprintf("coordinate cache unusable, starting empty: %v", err))
		return domain.CoordinateCache{}
	}
	if cache == nil {
		return domain.CoordinateCache{}
	}
	return cache
}

func (o *Orchestrator) loadFreshness() domain.FreshnessCache {
	cache, err := o.store.LoadFreshness()
	if err != nil {
		o.logger.Warn(fmt.Sprintf("freshness cache unusable, starting empty: %v", err))
		return domain.FreshnessCache{}
	}
	if cache == nil {
		return domain.FreshnessCache{}
	}
	return cache
}

// persist writes both caches. A failure of one document does not prevent writing the other.
func (o *Orchestrator) persist(coords domain.CoordinateCache, fresh domain.FreshnessCache) error {
	var errs []error
	if err := o.store.SaveCoordinates(coords); err != nil {
		errs = append(errs, err)
	}
	if err := o.store.SaveFreshness(fresh); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return zerr.Wrap(errors.Join(errs...), domain.ErrPersistFailure.Error())
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
