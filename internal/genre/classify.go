// Package genre decides which simulation a specification describes and pulls the
// initial entity attributes out of it.
package genre

import (
	"strings"

	"github.com/vovakirdan/gridpreview/internal/runtimeops"
)

// Genre is the simulation rule-set a specification maps to.
type Genre int

const (
	None Genre = iota
	Pursuit
	Puzzle
)

// String returns the genre identifier used by the CLI and storage.
func (g Genre) String() string {
	switch g {
	case Pursuit:
		return "pursuit"
	case Puzzle:
		return "puzzle"
	default:
		return "none"
	}
}

// Parse maps a genre identifier back to a Genre.
func Parse(s string) (Genre, bool) {
	switch s {
	case "pursuit":
		return Pursuit, true
	case "puzzle":
		return Puzzle, true
	case "none":
		return None, true
	}
	return None, false
}

// puzzleFragments are substrings that mark a falling-block specification.
var puzzleFragments = []string{"tetromino", runtimeops.LineClear}

// pursuitFragments are substrings that mark a snake-like specification.
var pursuitFragments = []string{
	"snakeBody",
	"actor.snake",
	"foodUniform",
	"growthOnEat",
	"snakeMovement",
	"foodSpawner",
}

// Classify picks a genre. Puzzle signals are checked first, so a list matching
// both resolves to Puzzle. Pass raw types alongside normalised ones when both
// are available; any of them may carry the signal.
func Classify(systemTypes []string, entities []runtimeops.Entity) Genre {
	for _, t := range systemTypes {
		if isPuzzleType(t) {
			return Puzzle
		}
	}
	for _, t := range systemTypes {
		if containsAny(t, pursuitFragments) {
			return Pursuit
		}
	}
	for _, e := range entities {
		if IsSnakeEntity(e) {
			return Pursuit
		}
	}
	return None
}

func isPuzzleType(t string) bool {
	return t == runtimeops.TetrisCore || containsAny(t, puzzleFragments)
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

// IsSnakeEntity reports whether e describes the controllable snake body.
func IsSnakeEntity(e runtimeops.Entity) bool {
	if e.ID == "snake" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Name), "snake") {
		return true
	}
	for _, c := range e.Components {
		if c.Type() == "Snake" {
			return true
		}
	}
	return false
}
