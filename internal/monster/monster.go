package monster

import (
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/render"
)

// Unit is the capability set shared by every unit type.
type Unit interface {
	Type() Type
	Update()
	Draw(c render.Canvas)

	// Eating stops translation and faces down. Resume walks left again.
	Eating()
	Resume()
	// Die faces up for the fall animation and marks the unit dying. It does
	// not stop the walk; removal is the owner's job.
	Die()

	// Hit starts the damage flash.
	Hit()
	TakeDamage(n int)
	HP() int
	Alive() bool
	Dying() bool
	IsEating() bool
	Flashing() bool
	Brightness() float64

	Center() core.Point
	// HitRegion is the collision box around the centre.
	HitRegion() core.Region
	Facing() Direction
	Remaining() int
	AnimationKey() string
	SpriteIndex() int
	Frame() int
}

// mob holds the state and behaviour every unit type shares.
type mob struct {
	env   *Env
	kind  Type
	stats Stats

	path  []core.Cell
	shape core.Region // Degenerate box; its centre is the position
	dir   Direction
	v     float64
	hp    int

	eating bool
	dead   bool

	hit        bool
	hitTimer   float64
	brightness float64

	spriteIdx     int
	switchCounter int

	frame      int
	frameTimer float64
	key        string
}

func newMob(t Type, waypoints []core.Cell, env *Env) mob {
	stats := env.Stats[t]
	m := mob{
		env:        env,
		kind:       t,
		stats:      stats,
		path:       append([]core.Cell(nil), waypoints...),
		dir:        Left,
		v:          stats.Velocity,
		hp:         stats.HP,
		brightness: 1.0,
	}
	if len(m.path) > 0 {
		c := env.Grid.GridToRegion(m.path[0]).Center()
		m.shape = core.RegionAt(c)
		m.path = m.path[1:]
	}
	m.key = env.AnimationKey(t, m.dir)
	return m
}

func (m *mob) Type() Type { return m.kind }

// Update advances one tick: animation key, flash, sprite clock, frame clock,
// then movement unless eating.
func (m *mob) Update() {
	m.key = m.env.AnimationKey(m.kind, m.dir)

	if m.hit {
		m.hitTimer -= 1.0 / float64(m.env.FPS)
		if m.hitTimer <= 0 {
			m.hit = false
			m.brightness = 1.0
		}
	}

	if m.switchCounter > 0 {
		m.switchCounter--
	} else {
		if n := m.stats.SpriteSets[m.dir]; n > 0 {
			m.spriteIdx = (m.spriteIdx + 1) % n
		} else {
			m.spriteIdx = 0
		}
		m.switchCounter = m.stats.SwitchFreq
	}

	if a, ok := m.env.Animations.Get(m.key); ok && a.FrameCount() > 0 {
		if m.frame >= a.FrameCount() {
			m.frame = 0
		}
		m.frameTimer += 100.0 / float64(m.env.FPS)
		if m.frameTimer >= float64(a.FrameDuration(m.frame)) {
			m.frameTimer = 0
			m.frame = (m.frame + 1) % a.FrameCount()
		}
	}

	if m.eating {
		return
	}
	m.move()
}

// move spends v/FPS pixels walking the waypoint queue. A waypoint closer than
// the remaining budget is snapped onto and popped, so one tick may pass
// several waypoints.
func (m *mob) move() {
	budget := m.v / float64(m.env.FPS)
	for len(m.path) > 0 && budget > 0 {
		goal := m.env.Grid.GridToRegion(m.path[0]).Center()
		cur := m.shape.Center()
		d := core.Dist(cur, goal)
		if d < budget {
			budget -= d
			m.shape = core.RegionAt(goal)
			m.path = m.path[1:]
			continue
		}
		m.shape.UpdateCenterX(cur.X + (goal.X-cur.X)/d*budget)
		m.shape.UpdateCenterY(cur.Y + (goal.Y-cur.Y)/d*budget)
		budget = 0
	}
}

// Draw blits the current animation frame centred on the unit. A missing
// animation or frame is logged and skipped; the lookup is retried next tick.
func (m *mob) Draw(c render.Canvas) {
	a, ok := m.env.Animations.Get(m.key)
	if !ok {
		m.env.Logger.Debug("animation not found", "key", m.key, "err", core.ErrAssetMissing)
		return
	}
	img := a.Frame(m.frame)
	if img == nil {
		m.env.Logger.Debug("animation frame not found", "key", m.key, "frame", m.frame)
		return
	}
	if m.hit {
		c.SetBlend(render.BlendAdditive)
	}
	center := m.shape.Center()
	c.DrawImage(img, center.X-float64(a.Width())/2, center.Y-float64(a.Height())/2)
	c.SetBlend(render.BlendAlpha)
}

func (m *mob) Eating() {
	m.eating = true
	m.dir = Down
}

func (m *mob) Resume() {
	m.eating = false
	m.dir = Left
}

func (m *mob) Die() {
	m.dead = true
	m.dir = Up
}

func (m *mob) Hit() {
	m.hit = true
	m.hitTimer = m.env.FlashSeconds
	m.brightness = m.env.FlashBrightness
}

// damage removes n HP, floored at zero.
func (m *mob) damage(n int) {
	if n <= 0 {
		return
	}
	m.hp = max(m.hp-n, 0)
}

func (m *mob) HP() int              { return m.hp }
func (m *mob) Alive() bool          { return m.hp > 0 }
func (m *mob) Dying() bool          { return m.dead }
func (m *mob) IsEating() bool       { return m.eating }
func (m *mob) Flashing() bool       { return m.hit }
func (m *mob) Brightness() float64  { return m.brightness }
func (m *mob) Center() core.Point   { return m.shape.Center() }
func (m *mob) Facing() Direction    { return m.dir }
func (m *mob) Remaining() int       { return len(m.path) }
func (m *mob) AnimationKey() string { return m.key }
func (m *mob) SpriteIndex() int     { return m.spriteIdx }
func (m *mob) Frame() int           { return m.frame }

func (m *mob) HitRegion() core.Region {
	return m.shape.Expand(m.stats.HitSize, m.stats.HitSize)
}
