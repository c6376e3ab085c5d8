// Package player defines the player record, its attribute bounds and the
// built-in stock catalog.
//
// Players are either stock (picked from the catalog) or custom (authored by
// the user). Attribute scores are validated on construction: out-of-range
// values are rejected with ErrInvalidAttribute rather than clamped, so a
// roster never silently holds values the user did not enter.
package player

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Attribute score bounds.
const (
	MinAttribute = 0
	MaxAttribute = 100
)

// Provenance tags how a player entered the roster.
type Provenance string

// Player provenance values.
const (
	Stock  Provenance = "stock"
	Custom Provenance = "custom"
)

// Attributes holds the bounded skill scores of a player.
type Attributes struct {
	Pace      int `json:"pace"`
	Passing   int `json:"passing"`
	Stamina   int `json:"stamina"`
	Awareness int `json:"awareness"`
	Tackling  int `json:"tackling"`
}

// validate checks every score against the attribute bounds.
func (a Attributes) validate() error {
	for _, f := range []struct {
		name  string
		score int
	}{
		{"pace", a.Pace},
		{"passing", a.Passing},
		{"stamina", a.Stamina},
		{"awareness", a.Awareness},
		{"tackling", a.Tackling},
	} {
		if f.score < MinAttribute || f.score > MaxAttribute {
			return fmt.Errorf("%w: %s=%d outside [%d,%d]",
				ErrInvalidAttribute, f.name, f.score, MinAttribute, MaxAttribute)
		}
	}
	return nil
}

// Player is a roster entry. Two same-named custom players are distinct
// records with distinct IDs; there is no interning.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Attributes Attributes `json:"attributes"`
	ImageURL   string     `json:"image_url,omitempty"`
	Provenance Provenance `json:"provenance"`
}

// NewCustom builds a user-authored player after validating the name and
// attribute bounds. Returns ErrInvalidAttribute when any score is out of
// range and ErrEmptyName when the name is blank.
func NewCustom(name string, attrs Attributes) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, ErrEmptyName
	}
	if err := attrs.validate(); err != nil {
		return Player{}, err
	}
	return Player{
		ID:         uuid.NewString(),
		Name:       name,
		Attributes: attrs,
		Provenance: Custom,
	}, nil
}

// NewStock builds a player from the built-in catalog.
// Returns ErrUnknownPlayer when the name is not in the catalog.
func NewStock(name string) (Player, error) {
	entry, ok := catalog[strings.TrimSpace(name)]
	if !ok {
		return Player{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
	return Player{
		ID:         uuid.NewString(),
		Name:       entry.name,
		Attributes: entry.attrs,
		Provenance: Stock,
	}, nil
}

// AttachImage records a resolved image URL on the player.
// It is the only mutation a player supports after construction.
func (p *Player) AttachImage(url string) {
	p.ImageURL = url
}
