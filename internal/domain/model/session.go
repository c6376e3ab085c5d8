// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/gaffer/internal/domain/player"
)

// Roster is the ordered set of players assigned to slots. Position in the
// slice, not player identity, determines the pitch slot a player occupies.
type Roster []player.Player

// Clone returns an independent copy of the roster.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

// IndexOf returns the position of the player with the given id, or -1.
func (r Roster) IndexOf(playerID string) int {
	for i := range r {
		if r[i].ID == playerID {
			return i
		}
	}
	return -1
}

// Session is the explicit per-user state object. All mutation flows through
// the app service; nothing in the session is shared ambient state.
type Session struct {
	ID          string    // unique session id
	FormationID string    // currently selected formation
	Roster      Roster    // ordered players, at most the formation's slot count
	CreatedAt   time.Time // session creation time
	UpdatedAt   time.Time // last mutation time
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	out.Roster = s.Roster.Clone()
	return out
}

// ResolveJob asks the image pipeline to look up a photo for one player.
// Delivery is best-effort: if the player left the roster before the result
// arrives, the result is discarded.
type ResolveJob struct {
	SessionID  string    // owning session
	PlayerID   string    // target player
	Name       string    // display name used for the lookup
	EnqueuedAt time.Time // when the job entered the queue
}
