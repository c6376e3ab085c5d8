// Package types contains common view types used across the application
package types

// PlayerView is the read-only player shape exposed to the presentation layer.
type PlayerView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Pace       int    `json:"pace"`
	Passing    int    `json:"passing"`
	Stamina    int    `json:"stamina"`
	Awareness  int    `json:"awareness"`
	Tackling   int    `json:"tackling"`
	ImageURL   string `json:"image_url"`
	Provenance string `json:"provenance"`
}

// Marker is one pitch position in the rendered layout. Unfilled slots carry
// a nil Player and render as empty markers.
type Marker struct {
	Slot   string      `json:"slot"` // label, e.g. "MID2"
	Role   string      `json:"role"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Player *PlayerView `json:"player,omitempty"`
}

// SessionView is the read-only session snapshot returned by the API.
type SessionView struct {
	ID        string       `json:"id"`
	Formation string       `json:"formation"`
	SlotCount int          `json:"slot_count"`
	Roster    []PlayerView `json:"roster"`
}
