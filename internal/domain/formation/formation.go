// Package formation defines the fixed registry of supported formations and
// their pitch coordinates.
//
// The registry is immutable and process-wide: every slot carries a normalized
// (x, y) coordinate in [0,1]x[0,1] pitch space, chosen so the goalkeeper,
// defensive, midfield and attacking lines separate visually. Lookups are pure
// and deterministic; the same identifier always yields identical slots.
package formation

import "fmt"

// Role identifies the line a slot belongs to.
type Role string

// Slot roles, ordered goal-line first.
const (
	RoleGoalkeeper Role = "GK"
	RoleDefender   Role = "DEF"
	RoleMidfielder Role = "MID"
	RoleAttacker   Role = "ATT"
)

// Line depths shared by every formation.
const (
	goalkeeperY = 0.15
	defenseY    = 0.30
	midfieldY   = 0.50
	attackY     = 0.75
)

// SlotCount is the number of slots in every supported formation.
const SlotCount = 11

// Coordinate is a normalized pitch position. X runs touchline to touchline,
// Y runs from the own goal line toward the opposition goal.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Slot is one position within a formation. Index is 1-based within the
// slot's line, so labels read GK1, DEF2, MID3 and so on.
type Slot struct {
	Role       Role       `json:"role"`
	Index      int        `json:"index"`
	Coordinate Coordinate `json:"coordinate"`
}

// Label returns the display label for the slot, e.g. "DEF2".
func (s Slot) Label() string {
	return fmt.Sprintf("%s%d", s.Role, s.Index)
}

// registry maps formation identifiers to their ordered slots. Built once at
// package init and never mutated afterwards.
var registry = map[string][]Slot{
	"4-3-3": build(
		line(RoleGoalkeeper, goalkeeperY, 0.50),
		line(RoleDefender, defenseY, 0.15, 0.35, 0.65, 0.85),
		line(RoleMidfielder, midfieldY, 0.25, 0.50, 0.75),
		line(RoleAttacker, attackY, 0.20, 0.50, 0.80),
	),
	"4-4-2": build(
		line(RoleGoalkeeper, goalkeeperY, 0.50),
		line(RoleDefender, defenseY, 0.15, 0.35, 0.65, 0.85),
		line(RoleMidfielder, midfieldY, 0.10, 0.40, 0.60, 0.90),
		line(RoleAttacker, attackY, 0.40, 0.60),
	),
	"3-5-2": build(
		line(RoleGoalkeeper, goalkeeperY, 0.50),
		line(RoleDefender, defenseY, 0.25, 0.50, 0.75),
		line(RoleMidfielder, midfieldY, 0.10, 0.30, 0.50, 0.70, 0.90),
		line(RoleAttacker, attackY, 0.40, 0.60),
	),
	"3-4-3": build(
		line(RoleGoalkeeper, goalkeeperY, 0.50),
		line(RoleDefender, defenseY, 0.25, 0.50, 0.75),
		line(RoleMidfielder, midfieldY, 0.20, 0.40, 0.60, 0.80),
		line(RoleAttacker, attackY, 0.20, 0.50, 0.80),
	),
}

// ids holds the supported identifiers in stable display order.
var ids = []string{"4-3-3", "4-4-2", "3-5-2", "3-4-3"}

// line expands one role line into slots at the given depth and spreads.
func line(role Role, y float64, xs ...float64) []Slot {
	slots := make([]Slot, len(xs))
	for i, x := range xs {
		slots[i] = Slot{
			Role:       role,
			Index:      i + 1,
			Coordinate: Coordinate{X: x, Y: y},
		}
	}
	return slots
}

// build concatenates role lines into a single ordered slot sequence.
func build(lines ...[]Slot) []Slot {
	var slots []Slot
	for _, l := range lines {
		slots = append(slots, l...)
	}
	if len(slots) != SlotCount {
		panic(fmt.Sprintf("formation registry: expected %d slots, got %d", SlotCount, len(slots)))
	}
	return slots
}

// IDs returns the supported formation identifiers in stable order.
func IDs() []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Known reports whether id names a supported formation.
func Known(id string) bool {
	_, ok := registry[id]
	return ok
}

// SlotsFor returns the ordered slots for a formation identifier.
// Returns ErrUnknownFormation if the identifier is not in the fixed set.
// The result is a copy; callers may not mutate the registry through it.
func SlotsFor(id string) ([]Slot, error) {
	slots, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormation, id)
	}
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out, nil
}
