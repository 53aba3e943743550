package game

import (
	"fmt"

	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/render"
)

// Draw renders the current state. It never changes simulation state.
func (g *Game) Draw(c render.Canvas) {
	w, h := float64(g.cfg.Window.Width), float64(g.cfg.Window.Height)
	window := core.NewRegion(0, 0, w, h)
	c.FillRect(window, render.ColorBackground)

	switch g.state {
	case StateEnd:
		return
	case StateMenu:
		g.drawMenu(c)
		return
	case StateAbout:
		g.drawAbout(c)
		return
	}

	g.session.Draw(c)
	g.drawHUD(c)

	switch {
	case g.state == StatePaused:
		c.FillRect(window, render.ColorOverlay)
		c.DrawText("GAME PAUSED", w/2-44, h/2, render.ColorText)
	case g.state == StateRoundStart:
		c.DrawText("GET READY", w/2-36, h/2, render.ColorText)
	case g.ending:
		c.FillRect(window, render.ColorOverlay)
		c.DrawText("THE ZOMBIES ATE YOUR BRAINS", w/2-108, h/2-20, render.ColorText)
		left := (g.endTicks - g.endTimer + g.cfg.Window.FPS - 1) / g.cfg.Window.FPS
		c.DrawText(fmt.Sprintf("back to menu in %d", left), w/2-72, h/2+10, render.ColorText)
	}
}

func (g *Game) drawMenu(c render.Canvas) {
	c.DrawText("SIEGE", 100, 200, render.ColorText)
	c.DrawText("hold the five lanes", 100, 230, render.ColorText)

	buttons := []struct {
		label string
		r     core.Region
	}{
		{"START", region(g.cfg.Menu.Start)},
		{"QUIT", region(g.cfg.Menu.Quit)},
		{"ABOUT", region(g.cfg.Menu.About)},
	}
	pointer := g.input.Pointer()
	for _, b := range buttons {
		fill := render.ColorButton
		if b.r.Contains(pointer) {
			fill = render.ColorButtonHot
		}
		c.FillRect(b.r, fill)
		x := b.r.CenterX() - float64(len(b.label))*4
		c.DrawText(b.label, x, b.r.CenterY()-6, render.ColorButtonText)
	}
}

var aboutLines = []string{
	"ABOUT",
	"",
	"Zombies walk in from the right along five lanes.",
	"Each lane has a defender that shoots anything ahead of it.",
	"A zombie that reaches a defender stops to eat it.",
	"Every zombie that walks off the left edge costs one HP.",
	"",
	"P pauses. Q quits. Click anywhere to go back.",
}

func (g *Game) drawAbout(c render.Canvas) {
	for i, line := range aboutLines {
		if line == "" {
			continue
		}
		c.DrawText(line, 100, 80+float64(i)*24, render.ColorText)
	}
}

func (g *Game) drawHUD(c render.Canvas) {
	s := g.session
	p := s.Player
	c.DrawText(fmt.Sprintf("HP %d/%d", p.HP, p.MaxHP), 10, 4, render.ColorText)
	c.DrawText(fmt.Sprintf("LEVEL %d", s.Level.Index()), 130, 4, render.ColorText)
	c.DrawText(fmt.Sprintf("INCOMING %d", s.Level.RemainMonsters()), 240, 4, render.ColorText)
	c.DrawText(fmt.Sprintf("ON FIELD %d", len(s.units)), 380, 4, render.ColorText)
	c.DrawText(fmt.Sprintf("KILLS %d", s.Stats.Killed), 520, 4, render.ColorText)
}

// Draw renders road, defenders, units and projectiles.
func (s *Session) Draw(c render.Canvas) {
	s.Level.Draw(c)

	for _, d := range s.Defenders {
		if !d.Alive() {
			continue
		}
		c.FillRect(d.Region, render.ColorDefender)
		bar := d.Region
		bar.Y2 = bar.Y1 + 4
		bar.X2 = bar.X1 + d.Region.Width()*float64(d.HP)/float64(max(d.MaxHP, 1))
		c.FillRect(bar, render.ColorHealth)
	}

	for _, u := range s.units {
		// Units without an animation still need to be visible
		if _, ok := s.env.Animations.Get(u.AnimationKey()); !ok {
			c.FillRect(u.HitRegion(), render.ColorUnit)
			continue
		}
		u.Draw(c)
	}

	for _, p := range s.Projectiles {
		c.FillRect(p.Region, render.ColorProjectile)
	}
}
