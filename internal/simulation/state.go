// Package simulation advances a simulated delivery one progress unit per tick.
package simulation

import (
	"math/rand/v2"
)

// Status is the delivery stage shown to the client.
type Status string

// Delivery stages, in the only order they can be reached.
const (
	StatusNotStarted      Status = "not_started"
	StatusPreparing       Status = "preparing"
	StatusEnRoutePickup   Status = "en_route_pickup"
	StatusEnRouteDelivery Status = "en_route_delivery"
	StatusDelivered       Status = "delivered"
)

const (
	progressComplete      = 100
	visibleFrom           = 50
	simulationIDPrefix    = "DEMO"
	simulationIDSuffixLen = 4
	simulationIDAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// thresholds maps the exact progress values at which the status changes.
var thresholds = map[int]Status{
	25:               StatusPreparing,
	visibleFrom:      StatusEnRoutePickup,
	75:               StatusEnRouteDelivery,
	progressComplete: StatusDelivered,
}

var notices = map[Status]string{
	StatusPreparing:       "vehicle in preparation",
	StatusEnRoutePickup:   "vehicle en route to pick up equipment",
	StatusEnRouteDelivery: "vehicle en route for delivery",
	StatusDelivered:       "delivered successfully",
}

// State is the ephemeral state of one simulation run.
type State struct {
	ID       string // ID is a cosmetic identifier, e.g. DEMO7QX2.
	Progress int    // Progress is a percentage in [0, 100].
	Status   Status // Status is the stage set at the last crossed threshold.
	Active   bool   // Active is true while ticks are still expected.
	Visible  bool   // Visible tells the renderer to draw the vehicle.
}

// Transition reports a status change at a given tick.
type Transition struct {
	From Status
	To   Status
	Tick int
}

// Notice returns the human readable message for the new status.
func (t Transition) Notice() string {
	return notices[t.To]
}

// NewState returns a reset state with a freshly generated ID.
func NewState() State {
	return State{ID: NewSimulationID(), Status: StatusNotStarted}
}

// Tick advances progress by one unit.
//
// The status only changes when progress lands exactly on 25, 50, 75 or 100, otherwise it
// keeps the last assigned value. Reaching 100 ends the simulation; ticking a finished state
// returns it unchanged.
func Tick(s State) (State, Transition, bool) {
	if s.Progress >= progressComplete {
		s.Progress = progressComplete
		s.Active = false
		s.Visible = false
		return s, Transition{}, false
	}

	s.Progress++
	s.Active = s.Progress < progressComplete

	var (
		tr      Transition
		changed bool
	)
	if next, ok := thresholds[s.Progress]; ok && next != s.Status {
		tr = Transition{From: s.Status, To: next, Tick: s.Progress}
		s.Status = next
		changed = true
	}

	s.Visible = visible(s)

	return s, tr, changed
}

// visible reports whether the vehicle marker should be drawn.
func visible(s State) bool {
	return s.Active && s.Progress >= visibleFrom && s.Progress < progressComplete
}

// Done reports whether the simulation reached its terminal state.
func (s State) Done() bool {
	return s.Progress >= progressComplete
}

// NewSimulationID returns "DEMO" followed by four random uppercase alphanumerics.
// It carries no uniqueness guarantee.
func NewSimulationID() string {
	buf := make([]byte, simulationIDSuffixLen)
	for i := range buf {
		buf[i] = simulationIDAlphabet[rand.IntN(len(simulationIDAlphabet))]
	}

	return simulationIDPrefix + string(buf)
}
