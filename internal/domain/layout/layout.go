// Package layout pairs roster players with formation slots.
//
// Assignment is strictly positional: roster index i maps to slot index i.
// The engine never tries to match a player's profile to a role; that is a
// deliberate simplicity choice, not an omission. Rosters shorter than the
// formation leave the trailing slots empty.
package layout

import (
	"fmt"

	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/model"
	"github.com/okian/gaffer/internal/domain/player"
	"github.com/okian/gaffer/internal/domain/types"
)

// Placement pairs one roster player with the slot they occupy.
type Placement struct {
	Player player.Player
	Slot   formation.Slot
}

// Assign maps roster entries onto the formation's slots in order.
// Returns ErrRosterTooLarge when the roster exceeds the slot count and
// propagates formation.ErrUnknownFormation for unknown identifiers.
func Assign(roster model.Roster, formationID string) ([]Placement, error) {
	slots, err := formation.SlotsFor(formationID)
	if err != nil {
		return nil, err
	}
	if len(roster) > len(slots) {
		return nil, fmt.Errorf("%w: %d players for %d slots",
			ErrRosterTooLarge, len(roster), len(slots))
	}
	placements := make([]Placement, len(roster))
	for i := range roster {
		placements[i] = Placement{Player: roster[i], Slot: slots[i]}
	}
	return placements, nil
}

// Markers renders the full formation as view markers: one per slot, with
// unfilled slots carrying no player. This is the shape the presentation
// layer draws on the pitch.
func Markers(roster model.Roster, formationID string) ([]types.Marker, error) {
	slots, err := formation.SlotsFor(formationID)
	if err != nil {
		return nil, err
	}
	if len(roster) > len(slots) {
		return nil, fmt.Errorf("%w: %d players for %d slots",
			ErrRosterTooLarge, len(roster), len(slots))
	}
	markers := make([]types.Marker, len(slots))
	for i, s := range slots {
		markers[i] = types.Marker{
			Slot: s.Label(),
			Role: string(s.Role),
			X:    s.Coordinate.X,
			Y:    s.Coordinate.Y,
		}
		if i < len(roster) {
			view := View(roster[i])
			markers[i].Player = &view
		}
	}
	return markers, nil
}

// View converts a player record into its read-only presentation shape.
func View(p player.Player) types.PlayerView {
	return types.PlayerView{
		ID:         p.ID,
		Name:       p.Name,
		Pace:       p.Attributes.Pace,
		Passing:    p.Attributes.Passing,
		Stamina:    p.Attributes.Stamina,
		Awareness:  p.Attributes.Awareness,
		Tackling:   p.Attributes.Tackling,
		ImageURL:   p.ImageURL,
		Provenance: string(p.Provenance),
	}
}
