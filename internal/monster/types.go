// Package monster implements the hostile units that walk the lanes.
//
// A unit owns a FIFO queue of grid waypoints and walks straight toward each
// waypoint's cell centre at a fixed velocity. Two animation clocks run on
// every unit: a sprite-set index stepped every switch_freq ticks, and the
// frame clock of the animation resource bound to the unit's type and facing.
// They have independent periods and are never merged.
package monster

import (
	"path"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/anim"
	"github.com/vovakirdan/siege/internal/core"
)

// Type is the closed enumeration of unit types. The order is also the order
// of remaining counts in a level file.
type Type int

const (
	Normal Type = iota
	Bucket
	Newspaper
	Flag
	TypeCount
)

func (t Type) String() string {
	switch t {
	case Normal:
		return "normal"
	case Bucket:
		return "bucket"
	case Newspaper:
		return "newspaper"
	case Flag:
		return "flag"
	default:
		return "unknown"
	}
}

// Direction is the facing of a unit. It selects the animation resource.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	directionCount
)

var directionNames = [directionCount]string{"up", "down", "left", "right"}

// Animation file postfix per facing. Up is the death fall, Down the eating
// loop, Left the regular walk.
var directionPostfix = [directionCount]string{"fall", "eat", "original", "nohead"}

func (d Direction) String() string {
	if d < 0 || d >= directionCount {
		return "unknown"
	}
	return directionNames[d]
}

// Postfix returns the animation file stem for the facing.
func (d Direction) Postfix() string {
	if d < 0 || d >= directionCount {
		return directionPostfix[Left]
	}
	return directionPostfix[d]
}

// Grid resolves waypoints to pixel regions. Implemented by level.Level.
type Grid interface {
	GridToRegion(c core.Cell) core.Region
}

// Stats are the tunables of one unit type.
type Stats struct {
	Velocity   float64 // Pixels per second
	HP         int
	Armor      int
	SwitchFreq int                 // Ticks between sprite-set steps
	SpriteSets [directionCount]int // Sprite count per facing
	HitSize    float64             // Half-size of the collision box
}

// Env carries everything a unit needs from its session. One Env is shared by
// every unit of a session.
type Env struct {
	Grid       Grid
	Animations anim.Library
	Logger     *log.Logger
	FPS        int

	// Roots holds the animation directory per type; keys are <root>/<postfix>.gif.
	Roots [TypeCount]string
	Stats [TypeCount]Stats

	FlashSeconds    float64
	FlashBrightness float64
}

// AnimationKey derives the animation resource key for a type and facing.
func (e *Env) AnimationKey(t Type, d Direction) string {
	if t < 0 || t >= TypeCount {
		return ""
	}
	return path.Join(e.Roots[t], d.Postfix()+".gif")
}
