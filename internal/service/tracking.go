package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/beacon/internal/coords"
	"github.com/UnknownOlympus/beacon/internal/geocoding"
	"github.com/UnknownOlympus/beacon/internal/metrics"
	"github.com/UnknownOlympus/beacon/internal/models"
	"github.com/UnknownOlympus/beacon/internal/repository"
	"github.com/UnknownOlympus/beacon/internal/route"
	"github.com/UnknownOlympus/beacon/internal/simulation"
)

// Errors returned when an order's endpoints cannot be turned into coordinates.
var (
	ErrUnresolvedStart = errors.New("start coordinates cannot be resolved")
	ErrUnresolvedEnd   = errors.New("end coordinates cannot be resolved")
)

// Snapshot is the latest known position of a tracked order.
type Snapshot struct {
	Order   models.Order
	State   simulation.State
	Vehicle route.VehicleState
}

// TrackingService polls the order store and runs one delivery simulation per active order.
type TrackingService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	router       route.Provider       // Route provider used to build waypoint lists
	providerName string               // Name of the route provider for metrics labeling
	geocoder     geocoding.Provider   // Optional geocoder for destination addresses
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	maxActive    int                  // Maximum number of simulations running at once
	pollInterval time.Duration        // Interval for polling the order store
	tickInterval time.Duration        // Duration of one simulation tick

	mu   sync.Mutex
	runs map[string]*run
	wg   sync.WaitGroup
}

// run is a single simulation bound to an order. It is released exactly once, by watch.
type run struct {
	order     models.Order
	waypoints []models.Coordinates
	driver    *simulation.Driver
	released  chan struct{}

	mu       sync.RWMutex
	snapshot Snapshot
}

// update stores a newer position. States older than the stored one are ignored.
func (r *run) update(state simulation.State, vehicle route.VehicleState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state.Progress < r.snapshot.State.Progress {
		return
	}
	r.snapshot.State = state
	r.snapshot.Vehicle = vehicle
}

func (r *run) current() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot
}

// NewTrackingService creates a new instance of TrackingService. The geocoder may be nil,
// in which case orders with unusable end coordinates are rejected.
func NewTrackingService(
	log *slog.Logger,
	repo repository.Interface,
	router route.Provider,
	providerName string,
	geocoder geocoding.Provider,
	metrics *metrics.Metrics,
	maxActive int,
	pollInterval time.Duration,
	tickInterval time.Duration,
) *TrackingService {
	return &TrackingService{
		log:          log,
		repo:         repo,
		router:       router,
		providerName: providerName,
		geocoder:     geocoder,
		metrics:      metrics,
		maxActive:    maxActive,
		pollInterval: pollInterval,
		tickInterval: tickInterval,
		runs:         make(map[string]*run),
	}
}

// Run starts the tracking service, which periodically polls for orders to simulate.
// When the context is canceled every running simulation is stopped before Run returns.
func (ts *TrackingService) Run(ctx context.Context) {
	ticker := time.NewTicker(ts.pollInterval)
	defer ticker.Stop()

	ts.log.InfoContext(ctx, "Tracking service started...")

	for {
		select {
		case <-ctx.Done():
			ts.stopAll()
			ts.log.InfoContext(ctx, "Tracking service stopped.")
			return
		case <-ticker.C:
			ts.log.DebugContext(ctx, "Polling for orders to track...")
			ts.processOrders(ctx)
		}
	}
}

// processOrders fetches active orders and starts a simulation for each one that is not
// already running, while there is free capacity.
func (ts *TrackingService) processOrders(ctx context.Context) {
	orders, err := ts.repo.FetchActiveOrders(ctx, ts.maxActive)
	if err != nil {
		ts.log.ErrorContext(ctx, "Failed to fetch orders", "error", err)
		return
	}
	if len(orders) == 0 {
		ts.log.DebugContext(ctx, "No orders to track.")
		return
	}

	started := 0
	for _, order := range orders {
		if ts.isRunning(order.TrackingID) {
			continue
		}
		if ts.Active() >= ts.maxActive {
			ts.log.WarnContext(ctx, "Simulation capacity reached", "max_active", ts.maxActive)
			break
		}

		if err = ts.Track(ctx, order); err != nil {
			ts.log.ErrorContext(ctx, "Failed to start tracking", "tracking_id", order.TrackingID, "error", err)
			ts.metrics.APIErrors.Inc()

			if err = ts.repo.IncrementRouteFailures(ctx, order.TrackingID, err.Error()); err != nil {
				ts.log.ErrorContext(
					ctx,
					"Could not update route failures for order",
					"tracking_id", order.TrackingID,
					"error", err,
				)
			}
			continue
		}
		started++
	}

	ts.log.InfoContext(ctx, "Processing batch finished", "orders", len(orders), "started", started)
}

// Track resolves the order's route and starts its simulation. A simulation already
// running for the same tracking ID is released first.
func (ts *TrackingService) Track(ctx context.Context, order models.Order) error {
	start, end, err := ts.resolve(ctx, order)
	if err != nil {
		return err
	}

	startTime := time.Now()
	waypoints, err := ts.router.Route(ctx, start, end)
	duration := time.Since(startTime).Seconds()
	ts.metrics.RequestSeconds.WithLabelValues(ts.providerName).Observe(duration)
	if err != nil {
		return fmt.Errorf("failed to build route: %w", err)
	}

	vehicle, err := route.PositionAt(waypoints, 0)
	if err != nil {
		return fmt.Errorf("failed to place vehicle: %w", err)
	}

	r := &run{
		order:     order,
		waypoints: waypoints,
		released:  make(chan struct{}),
	}
	r.driver = simulation.NewDriver(ts.log, ts.tickInterval,
		simulation.WithTickHandler(func(state simulation.State) { ts.onTick(ctx, r, state) }),
		simulation.WithTransitionHandler(func(tr simulation.Transition) { ts.onTransition(ctx, r, tr) }),
	)
	r.snapshot = Snapshot{Order: order, State: r.driver.State(), Vehicle: vehicle}

	ts.lockFree(order.TrackingID)
	if err = r.driver.Start(ctx); err != nil {
		ts.mu.Unlock()
		return fmt.Errorf("failed to start simulation: %w", err)
	}
	state := r.driver.State()
	r.update(state, vehicle)
	ts.runs[order.TrackingID] = r
	ts.wg.Add(1)
	ts.metrics.ActiveSimulations.Inc()
	ts.mu.Unlock()

	ts.metrics.SimulationsStarted.Inc()
	ts.log.InfoContext(ctx, "Tracking started",
		"tracking_id", order.TrackingID,
		"simulation", state.ID,
		"driver", order.DriverName,
		"waypoints", len(waypoints),
		"destination", coords.MapsLink(end),
	)

	go ts.watch(ctx, r)

	return nil
}

// lockFree acquires ts.mu with no run registered for the tracking ID, stopping and
// awaiting any run found there. The caller must unlock.
func (ts *TrackingService) lockFree(trackingID string) {
	for {
		ts.mu.Lock()
		old, ok := ts.runs[trackingID]
		if !ok {
			return
		}
		ts.mu.Unlock()

		old.driver.Stop()
		<-old.released
	}
}

// resolve parses the order endpoints. An unusable end point falls back to geocoding
// the destination address.
func (ts *TrackingService) resolve(
	ctx context.Context,
	order models.Order,
) (models.Coordinates, models.Coordinates, error) {
	var none models.Coordinates

	start := coords.Parse(order.StartCoordinates)
	if start == nil {
		return none, none, fmt.Errorf("%w: %q", ErrUnresolvedStart, order.StartCoordinates)
	}
	if err := coords.Validate(*start); err != nil {
		return none, none, fmt.Errorf("%w: %w", ErrUnresolvedStart, err)
	}

	end := coords.Parse(order.EndCoordinates)
	if end != nil && coords.Validate(*end) == nil {
		return *start, *end, nil
	}

	if ts.geocoder == nil || order.Destination == "" {
		return none, none, fmt.Errorf("%w: %q", ErrUnresolvedEnd, order.EndCoordinates)
	}

	ts.log.DebugContext(ctx, "Geocoding destination", "tracking_id", order.TrackingID, "destination", order.Destination)
	end, err := ts.geocoder.Geocode(ctx, order.Destination)
	if err != nil {
		return none, none, fmt.Errorf("%w: %w", ErrUnresolvedEnd, err)
	}
	if end == nil {
		return none, none, fmt.Errorf("%w: no result for %q", ErrUnresolvedEnd, order.Destination)
	}

	return *start, *end, nil
}

func (ts *TrackingService) onTick(ctx context.Context, r *run, state simulation.State) {
	vehicle, err := route.PositionAt(r.waypoints, state.Progress)
	if err != nil {
		ts.log.ErrorContext(ctx, "Failed to compute vehicle position", "tracking_id", r.order.TrackingID, "error", err)
		return
	}
	r.update(state, vehicle)
}

func (ts *TrackingService) onTransition(ctx context.Context, r *run, tr simulation.Transition) {
	ts.metrics.StatusTransitions.WithLabelValues(string(tr.To)).Inc()
	ts.log.InfoContext(ctx, tr.Notice(),
		"tracking_id", r.order.TrackingID,
		"from", tr.From,
		"to", tr.To,
		"tick", tr.Tick,
	)
}

// watch waits for the run to end, releases it and completes the order once delivered.
func (ts *TrackingService) watch(ctx context.Context, r *run) {
	defer ts.wg.Done()
	<-r.driver.Done()

	state := r.driver.State()

	ts.mu.Lock()
	if ts.runs[r.order.TrackingID] == r {
		delete(ts.runs, r.order.TrackingID)
	}
	ts.mu.Unlock()
	ts.metrics.ActiveSimulations.Dec()
	close(r.released)

	if state.Status != simulation.StatusDelivered {
		ts.log.InfoContext(ctx, "Tracking stopped", "tracking_id", r.order.TrackingID, "progress", state.Progress)
		return
	}

	if err := ts.repo.CompleteOrder(context.WithoutCancel(ctx), r.order.TrackingID); err != nil {
		ts.log.ErrorContext(ctx, "Failed to complete order", "tracking_id", r.order.TrackingID, "error", err)
		return
	}
	ts.log.InfoContext(ctx, "Order delivered", "tracking_id", r.order.TrackingID, "simulation", state.ID)
}

// Snapshot returns the latest position of a running simulation.
func (ts *TrackingService) Snapshot(trackingID string) (Snapshot, bool) {
	ts.mu.Lock()
	r, ok := ts.runs[trackingID]
	ts.mu.Unlock()
	if !ok {
		return Snapshot{}, false
	}

	return r.current(), true
}

// Stop halts the simulation of an order and waits until it is released.
// It reports whether a simulation was running.
func (ts *TrackingService) Stop(trackingID string) bool {
	ts.mu.Lock()
	r, ok := ts.runs[trackingID]
	ts.mu.Unlock()
	if !ok {
		return false
	}

	r.driver.Stop()
	<-r.released

	return true
}

// Active returns the number of running simulations.
func (ts *TrackingService) Active() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return len(ts.runs)
}

func (ts *TrackingService) isRunning(trackingID string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	_, ok := ts.runs[trackingID]
	return ok
}

// stopAll stops every simulation and waits for their watchers to finish.
func (ts *TrackingService) stopAll() {
	ts.mu.Lock()
	runs := make([]*run, 0, len(ts.runs))
	for _, r := range ts.runs {
		runs = append(runs, r)
	}
	ts.mu.Unlock()

	for _, r := range runs {
		r.driver.Stop()
	}
	ts.wg.Wait()
}
