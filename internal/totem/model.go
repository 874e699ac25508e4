// Package totem provides models, repositories and the service for the
// physical kiosk terminals that present questions to passersby.
package totem

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Totem is a physical kiosk with a fixed geographic location. Totems
// are immutable after creation except for deletion.
type Totem struct {
	TotemID   string    `bson:"totem_id" json:"totem_id"`
	Latitude  float64   `bson:"latitude" json:"latitude"`
	Longitude float64   `bson:"longitude" json:"longitude"`
	CreatedAt time.Time `bson:"data_criacao" json:"data_criacao"`
}

// New creates a Totem at the given coordinates with a generated ID.
// The ID is derived from the same instant stored in CreatedAt.
func New(latitude, longitude float64) *Totem {
	now := time.Now().UTC()
	return &Totem{
		TotemID:   generateID(latitude, longitude, now),
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: now,
	}
}

// generateID derives a 12-character identifier from the coordinates and
// the creation instant. Two totems at the same spot still get distinct
// IDs because the timestamp participates.
func generateID(latitude, longitude float64, now time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%v_%v_%d", latitude, longitude, now.UnixNano())))
	return hex.EncodeToString(sum[:])[:12]
}
