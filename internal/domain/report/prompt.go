// Package report builds the tactical analysis prompt from a roster and
// formation snapshot.
//
// Prompt assembly is pure and deterministic: the same snapshot always yields
// the same prompt string, which keeps report requests reproducible and
// testable without touching the text-generation boundary.
package report

import (
	"fmt"
	"strings"

	"github.com/okian/gaffer/internal/domain/formation"
	"github.com/okian/gaffer/internal/domain/layout"
)

// systemPrompt frames the model as a football analyst for every request.
const systemPrompt = "You are a professional football analyst and scout. " +
	"You assess squads objectively and write in concise, structured Markdown."

// promptTemplate is the user-facing request body. The roster section lists
// one "LABEL: name (attributes)" line per assigned player.
const promptTemplate = `Analyze this team's tactical profile based on the %s formation.

Team Roster:
%s
Line Profile (average attribute scores per line):
%s
Provide your analysis in the following strict Markdown structure. Do not include any text before the first heading:

## Strengths
* [Sharp point about a key advantage]

## Weaknesses
* [Sharp point about a potential liability]

## Tactical Suggestions
* [Concrete suggestion for the coach]
`

// SystemPrompt returns the fixed system framing for report requests.
func SystemPrompt() string {
	return systemPrompt
}

// BuildPrompt serializes the formation and placements into the analyst
// prompt. Placements come from the layout engine, so ordering is already
// positional and stable.
func BuildPrompt(formationID string, placements []layout.Placement) string {
	var roster strings.Builder
	for _, p := range placements {
		a := p.Player.Attributes
		fmt.Fprintf(&roster, "%s: %s (pace %d, passing %d, stamina %d, awareness %d, tackling %d)\n",
			p.Slot.Label(), p.Player.Name, a.Pace, a.Passing, a.Stamina, a.Awareness, a.Tackling)
	}
	return fmt.Sprintf(promptTemplate, formationID, roster.String(), lineProfile(placements))
}

// lineProfile aggregates attribute averages per role line so the model sees
// the shape of the squad, not just individual names.
func lineProfile(placements []layout.Placement) string {
	type agg struct {
		count                                       int
		pace, passing, stamina, awareness, tackling int
	}
	byRole := map[formation.Role]*agg{}
	for _, p := range placements {
		a := byRole[p.Slot.Role]
		if a == nil {
			a = &agg{}
			byRole[p.Slot.Role] = a
		}
		a.count++
		a.pace += p.Player.Attributes.Pace
		a.passing += p.Player.Attributes.Passing
		a.stamina += p.Player.Attributes.Stamina
		a.awareness += p.Player.Attributes.Awareness
		a.tackling += p.Player.Attributes.Tackling
	}

	var b strings.Builder
	for _, role := range []formation.Role{
		formation.RoleGoalkeeper,
		formation.RoleDefender,
		formation.RoleMidfielder,
		formation.RoleAttacker,
	} {
		a, ok := byRole[role]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: pace %d, passing %d, stamina %d, awareness %d, tackling %d\n",
			role,
			a.pace/a.count, a.passing/a.count, a.stamina/a.count,
			a.awareness/a.count, a.tackling/a.count)
	}
	if b.Len() == 0 {
		return "(no players assigned)\n"
	}
	return b.String()
}
