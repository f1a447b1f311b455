package sokoban_test

import (
	"testing"

	"github.com/t-kuester/sokoban/internal/levels"
	"github.com/t-kuester/sokoban/internal/sokoban"
)

// scenarioLevel is Microban 1: one box already on a goal, one still to push.
const scenarioLevel = `
####
# .#
#  ###
#*@  #
#  $ #
#  ###
####
`

// mustLevel parses a level fixture or fails the test.
func mustLevel(t *testing.T, text string) (*sokoban.Grid, sokoban.State) {
	t.Helper()
	lvl, err := levels.ParseLevelString(text)
	if err != nil {
		t.Fatalf("parsing fixture level: %v", err)
	}
	return lvl.Grid, lvl.Start
}

// applyAll applies a plan move by move, failing on any illegal intermediate
// move, and returns the final state.
func applyAll(t *testing.T, g *sokoban.Grid, s sokoban.State, p sokoban.Plan) sokoban.State {
	t.Helper()
	for i, m := range p {
		next, err := s.Apply(g, m)
		if err != nil {
			t.Fatalf("move %d (%v push=%v) illegal: %v", i, m.Dir, m.Push, err)
		}
		if err := next.Validate(g); err != nil {
			t.Fatalf("state invalid after move %d: %v", i, err)
		}
		s = next
	}
	return s
}
