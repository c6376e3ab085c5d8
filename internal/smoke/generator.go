package smoke

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/player"
	"github.com/okian/gaffer/pkg/logger"
)

// Squad shape bounds.
const (
	minRosterSize  = 5
	fullRosterSize = formation.SlotCount
	maxCustoms     = 3
)

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateSquads creates the scenarios to build: each squad picks a
// formation, a slice of the stock catalog and a few synthetic customs.
func generateSquads(ctx context.Context, config *Config) []Squad {
	logger.Get().Info(ctx, "generating squad scenarios", logger.Int("numSessions", config.NumSessions))

	formations := formation.IDs()
	stock := player.StockNames()

	squads := make([]Squad, config.NumSessions)
	for i := range squads {
		customs := randomInt(maxCustoms + 1)
		rosterSize := minRosterSize + randomInt(fullRosterSize-minRosterSize+1)
		stockCount := rosterSize - customs
		if stockCount > len(stock) {
			stockCount = len(stock)
		}

		// Rotate through the catalog so squads differ from each other.
		names := make([]string, 0, stockCount)
		offset := randomInt(len(stock))
		for j := 0; j < stockCount; j++ {
			names = append(names, stock[(offset+j)%len(stock)])
		}

		squads[i] = Squad{
			Formation: formations[i%len(formations)],
			Stock:     names,
			Customs:   customs,
		}
	}
	return squads
}

// customName returns a synthetic but plausible custom player name.
func customName(session, index int) string {
	return fmt.Sprintf("Trialist %d-%d", session+1, index+1)
}

// customAttributes produces bounded random attribute scores.
func customAttributes() map[string]int {
	return map[string]int{
		"pace":      40 + randomInt(61),
		"passing":   40 + randomInt(61),
		"stamina":   40 + randomInt(61),
		"awareness": 40 + randomInt(61),
		"tackling":  40 + randomInt(61),
	}
}
