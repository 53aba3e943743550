package monster

import "github.com/vovakirdan/siege/internal/core"

// New creates a unit of type t walking waypoints. The first waypoint is
// consumed immediately as the starting position.
func New(t Type, waypoints []core.Cell, env *Env) Unit {
	switch t {
	case Bucket:
		return &BucketUnit{mob: newMob(t, waypoints, env)}
	case Newspaper:
		return &NewspaperUnit{mob: newMob(t, waypoints, env), paper: true}
	case Flag:
		return &FlagUnit{mob: newMob(t, waypoints, env)}
	default:
		return &NormalUnit{mob: newMob(Normal, waypoints, env)}
	}
}

// NormalUnit takes every point of damage.
type NormalUnit struct {
	mob
}

func (u *NormalUnit) TakeDamage(n int) {
	u.damage(n)
}

// BucketUnit wears a bucket that absorbs Armor points of every hit.
// A hit always deals at least one point.
type BucketUnit struct {
	mob
}

func (u *BucketUnit) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	u.damage(max(n-u.stats.Armor, 1))
}

// NewspaperUnit hides behind a newspaper that absorbs Armor points per hit.
// Once it drops to half HP the paper is gone and it walks twice as fast.
type NewspaperUnit struct {
	mob
	paper bool
}

func (u *NewspaperUnit) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	if !u.paper {
		u.damage(n)
		return
	}
	u.damage(max(n-u.stats.Armor, 1))
	if u.hp*2 <= u.stats.HP {
		u.paper = false
		u.v *= 2
	}
}

// Enraged reports whether the newspaper has been lost.
func (u *NewspaperUnit) Enraged() bool {
	return !u.paper
}

// FlagUnit leads the wave. It has no armour.
type FlagUnit struct {
	mob
}

func (u *FlagUnit) TakeDamage(n int) {
	u.damage(n)
}
