package models

import (
	"math/rand/v2"
	"time"
)

// Order statuses as stored by the admin panel.
const (
	OrderInProgress = "en_curso"
	OrderCompleted  = "completado"
	OrderCanceled   = "cancelado"
)

const (
	trackingIDLength = 6
	trackingAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Order represents a tracking order assigned to a driver.
type Order struct {
	TrackingID       string     // TrackingID is the code the client uses to follow the service.
	ClientName       string     // ClientName is the name of the customer.
	ClientPhone      string     // ClientPhone is the phone number of the customer.
	DriverName       string     // DriverName is the name of the assigned driver.
	DriverPhone      string     // DriverPhone identifies the assigned driver.
	StartCoordinates string     // StartCoordinates is the pickup point in "lat,lng" form.
	EndCoordinates   string     // EndCoordinates is the drop-off point in "lat,lng" form.
	Destination      string     // Destination is the free-text drop-off address.
	Details          string     // Details holds optional order notes.
	Comments         string     // Comments holds optional admin comments.
	Status           string     // Status is one of en_curso, completado, cancelado.
	CreatedAt        time.Time  // CreatedAt is when the order was created.
	CompletedAt      *time.Time // CompletedAt is set once the order is delivered.
	RouteAttempts    int        // RouteAttempts counts failed attempts to build a route.
}

// NewTrackingID returns a random six character uppercase alphanumeric code.
// The code is not guaranteed to be unique.
func NewTrackingID() string {
	buf := make([]byte, trackingIDLength)
	for i := range buf {
		buf[i] = trackingAlphabet[rand.IntN(len(trackingAlphabet))]
	}

	return string(buf)
}
