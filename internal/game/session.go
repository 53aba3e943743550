package game

import (
	"io/fs"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/siege/internal/anim"
	"github.com/vovakirdan/siege/internal/config"
	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/level"
	"github.com/vovakirdan/siege/internal/monster"
)

// Player is the base the units walk toward.
type Player struct {
	HP    int
	MaxHP int
}

// Stats count what happened during a round.
type Stats struct {
	Spawned int
	Killed  int
	Leaked  int
	Shots   int
}

type liveUnit struct {
	monster.Unit
	deathTimer int
}

// Session owns every piece of mutable play state. One Session lives as long
// as its Game and is reset at each round start.
type Session struct {
	cfg    config.SiegeConfig
	logger *log.Logger

	Level       *level.Level
	Player      Player
	Defenders   []*Defender
	Projectiles []*Projectile
	Stats       Stats

	units      []*liveUnit
	env        *monster.Env
	deathTicks int
	startHP    int
}

func newSession(cfg config.SiegeConfig, assets fs.FS, anims anim.Library, seed int64, logger *log.Logger) *Session {
	dm := config.NewDifficultyManager(cfg.Difficulty)

	s := &Session{
		cfg:        cfg,
		logger:     logger,
		deathTicks: int(math.Round(cfg.Units.DeathSeconds * float64(cfg.Window.FPS))),
		startHP:    dm.PlayerHP(cfg.Player.HP),
	}

	set := level.SettingsFromConfig(cfg)
	set.SpawnRate = dm.SpawnRate(set.SpawnRate)
	s.Level = level.New(assets, set, s, seed, logger.WithPrefix("level"))

	env := &monster.Env{
		Grid:            s.Level,
		Animations:      anims,
		Logger:          logger.WithPrefix("unit"),
		FPS:             cfg.Window.FPS,
		FlashSeconds:    cfg.Units.FlashSeconds,
		FlashBrightness: cfg.Units.FlashBrightness,
	}
	for i, st := range cfg.Units.ByIndex() {
		if i >= int(monster.TypeCount) {
			break
		}
		var sets [4]int
		copy(sets[:], st.SpriteSets)
		env.Stats[i] = monster.Stats{
			Velocity:   dm.Velocity(st.Velocity),
			HP:         st.HP,
			Armor:      st.Armor,
			SwitchFreq: st.SwitchFreq,
			SpriteSets: sets,
			HitSize:    st.HitSize,
		}
		if i < len(cfg.Assets.AnimationRoots) {
			env.Roots[i] = cfg.Assets.AnimationRoots[i]
		}
	}
	s.env = env
	s.Player = Player{HP: s.startHP, MaxHP: s.startHP}
	return s
}

// Reset clears live units and projectiles, rebuilds the defenders, reloads
// the start level and restores the player.
func (s *Session) Reset() error {
	s.units = nil
	s.Projectiles = nil
	s.Stats = Stats{}

	s.Level.Init()
	if err := s.Level.Load(s.cfg.Level.Start); err != nil {
		return err
	}

	s.Defenders = s.Defenders[:0]
	for lane := 0; lane < s.cfg.Defenders.Count; lane++ {
		s.Defenders = append(s.Defenders, newDefender(s.Level, s.cfg.Defenders, lane))
	}
	s.Player = Player{HP: s.startHP, MaxHP: s.startHP}
	return nil
}

// Spawn adds a unit. The level's spawn gate calls it.
func (s *Session) Spawn(t monster.Type, path []core.Cell) {
	s.AddUnit(monster.New(t, path, s.env))
	s.Stats.Spawned++
}

// AddUnit adds an already built unit.
func (s *Session) AddUnit(u monster.Unit) {
	s.units = append(s.units, &liveUnit{Unit: u})
}

// Units returns the live units in spawn order.
func (s *Session) Units() []monster.Unit {
	out := make([]monster.Unit, len(s.units))
	for i, u := range s.units {
		out[i] = u.Unit
	}
	return out
}

// Env returns the environment shared by the session's units.
func (s *Session) Env() *monster.Env { return s.env }

// update runs the Active-state order: defenders, spawn gate, units, operations.
func (s *Session) update() {
	s.updateDefenders()
	s.Level.Update()
	for _, u := range s.units {
		u.Update()
	}
	s.operate()
}
