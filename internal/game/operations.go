package game

import (
	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/level"
	"github.com/vovakirdan/siege/internal/monster"
)

// Defender guards one lane. It shoots at units to its right and is eaten by
// units that reach it.
type Defender struct {
	Lane   int
	Region core.Region
	HP     int
	MaxHP  int

	cooldown int
	eaters   []monster.Unit
}

func newDefender(l *level.Level, cfg config.DefenderConfig, lane int) *Defender {
	center := l.GridToRegion(core.Cell{X: cfg.Column, Y: lane}).Center()
	half := cfg.Size / 2
	return &Defender{
		Lane:   lane,
		Region: core.NewRegion(center.X-half, center.Y-half, center.X+half, center.Y+half),
		HP:     cfg.HP,
		MaxHP:  cfg.HP,
	}
}

// Alive reports whether the defender still stands.
func (d *Defender) Alive() bool { return d.HP > 0 }

// Eaters returns the units eating the defender.
func (d *Defender) Eaters() []monster.Unit { return d.eaters }

// Projectile flies right along a lane until it hits a unit or runs out of range.
type Projectile struct {
	Region core.Region
	Damage int

	step  float64 // Pixels per tick
	flown float64
	reach float64
	spent bool
}

// Spent reports whether the projectile hit something or left its range.
func (p *Projectile) Spent() bool { return p.spent }

// laneOf returns the lane row a unit is walking.
func (s *Session) laneOf(u monster.Unit) int {
	return s.Level.PointToGrid(u.Center()).Y
}

func (s *Session) updateDefenders() {
	cfg := s.cfg.Defenders
	for _, d := range s.Defenders {
		if !d.Alive() {
			continue
		}
		if d.cooldown > 0 {
			d.cooldown--
			continue
		}
		if !s.targetAhead(d) {
			continue
		}
		s.fire(d, cfg)
		d.cooldown = cfg.FireTicks
	}
}

func (s *Session) targetAhead(d *Defender) bool {
	cx := d.Region.CenterX()
	for _, u := range s.units {
		if !u.Alive() || u.Dying() {
			continue
		}
		if s.laneOf(u) == d.Lane && u.Center().X > cx {
			return true
		}
	}
	return false
}

func (s *Session) fire(d *Defender, cfg config.DefenderConfig) {
	reach := cfg.ProjectileRange
	if reach <= 0 {
		reach = float64(s.cfg.Window.FieldLength)
	}
	half := cfg.ProjectileSize / 2
	c := d.Region.Center()
	s.Projectiles = append(s.Projectiles, &Projectile{
		Region: core.NewRegion(c.X-half, c.Y-half, c.X+half, c.Y+half),
		Damage: cfg.ProjectileDamage,
		step:   cfg.ProjectileSpeed / float64(s.cfg.Window.FPS),
		reach:  reach,
	})
	s.Stats.Shots++
}

// operate resolves interactions after every unit has moved: projectiles,
// eating, deaths, and units that reached the end of their lane.
func (s *Session) operate() {
	s.moveProjectiles()
	s.feed()
	s.reap()
}

func (s *Session) moveProjectiles() {
	live := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		p.Region.UpdateCenterX(p.Region.CenterX() + p.step)
		p.flown += p.step
		if p.flown > p.reach {
			p.spent = true
		}
		if !p.spent {
			for _, u := range s.units {
				if !u.Alive() || u.Dying() {
					continue
				}
				if p.Region.Overlap(u.HitRegion()) {
					u.TakeDamage(p.Damage)
					u.Hit()
					p.spent = true
					break
				}
			}
		}
		if !p.spent {
			live = append(live, p)
		}
	}
	s.Projectiles = live
}

// feed starts units eating defenders they touch and applies bites. When a
// defender falls its eaters walk on.
func (s *Session) feed() {
	for _, u := range s.units {
		if !u.Alive() || u.Dying() || u.IsEating() {
			continue
		}
		for _, d := range s.Defenders {
			if d.Alive() && d.Region.Overlap(u.HitRegion()) {
				u.Eating()
				d.eaters = append(d.eaters, u.Unit)
				break
			}
		}
	}

	bite := s.cfg.Defenders.Bite
	for _, d := range s.Defenders {
		if !d.Alive() {
			continue
		}
		eaters := d.eaters[:0]
		for _, u := range d.eaters {
			if u.Alive() && !u.Dying() {
				eaters = append(eaters, u)
			}
		}
		d.eaters = eaters
		d.HP = max(d.HP-bite*len(eaters), 0)
		if d.Alive() {
			continue
		}
		for _, u := range d.eaters {
			u.Resume()
		}
		d.eaters = nil
		s.logger.Info("defender fell", "lane", d.Lane)
	}
}

// reap kills units at 0 HP, removes dead units once their fall has played,
// and removes units that walked off the end, costing the player one HP.
func (s *Session) reap() {
	live := s.units[:0]
	for _, u := range s.units {
		if !u.Alive() && !u.Dying() {
			u.Die()
			u.deathTimer = s.deathTicks
			s.Stats.Killed++
		}
		if u.Dying() {
			u.deathTimer--
			if u.deathTimer <= 0 {
				continue
			}
			live = append(live, u)
			continue
		}
		if u.Remaining() == 0 {
			s.Player.HP = max(s.Player.HP-1, 0)
			s.Stats.Leaked++
			s.logger.Debug("unit broke through", "type", u.Type(), "hp", s.Player.HP)
			continue
		}
		live = append(live, u)
	}
	for i := len(live); i < len(s.units); i++ {
		s.units[i] = nil
	}
	s.units = live
}
