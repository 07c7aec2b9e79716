package invaders

import (
	"fmt"

	ss "github.com/bjorn2code64/shapeshifter"
)

// buildInvaders lays the formation out column by column. Row 0 sits just
// below the score and ship lane.
func (g *Game) buildInvaders() {
	c := g.cfg
	top := c.Screen.TextHeight*3 + c.Screen.ShipLane
	g.invaders = make([]*Invader, 0, c.Invader.Cols*c.Invader.Rows)
	for col := 0; col < c.Invader.Cols; col++ {
		for row := 0; row < c.Invader.Rows; row++ {
			sp := speciesForRow(row)
			s := ss.NewBitmap(fmt.Sprintf("invader-%d-%d", col, row),
				g.sprites.Invaders[sp][frameClosed], c.Invader.Width, c.Invader.Height)
			s.Color = c.Colors.Invader
			s.SetPos(ss.Vec2{
				X: c.Invader.Border + float64(col)*(c.Invader.Width+c.Invader.Border),
				Y: c.Invader.Border + float64(row)*(c.Invader.Height+c.Invader.Border) + top,
			})
			s.SetMotion(c.Invader.Speed, 90)
			g.invaders = append(g.invaders, &Invader{Shape: s, Species: sp, Row: row, Col: col})
			g.scene.Enqueue(s, true)
		}
	}
}

// buildBarriers splits each barrier into a grid of cells that are knocked
// out one hit at a time. Cells are one unit larger than the grid pitch so
// neighbours overlap and leave no seams.
func (g *Game) buildBarriers() {
	b := g.cfg.Barrier
	if b.Count == 0 {
		return
	}
	cellW := b.Width/float64(b.DividerX) + 1
	cellH := b.Height/float64(b.DividerY) + 1
	pitch := float64(g.cfg.Screen.Width) / float64(b.Count)
	g.barriers = make([]*ss.Shape, 0, b.Count*b.DividerX*b.DividerY)
	for i := 0; i < b.Count; i++ {
		left := pitch/2 + pitch*float64(i) - b.Width/2
		for x := 0; x < b.DividerX; x++ {
			for y := 0; y < b.DividerY; y++ {
				s := ss.NewRectangle(fmt.Sprintf("barrier-%d-%d-%d", i, x, y), cellW, cellH)
				s.Color = g.cfg.Colors.Barrier
				s.SetPos(ss.Vec2{
					X: left + float64(x)*b.Width/float64(b.DividerX),
					Y: b.Y + float64(y)*b.Height/float64(b.DividerY),
				})
				g.barriers = append(g.barriers, s)
				g.scene.Enqueue(s, true)
			}
		}
	}
}

// buildIndicators creates one scaled-down cannon per life. Each is a group
// holding a body and a bullet so it can be toggled as a unit.
func (g *Game) buildIndicators() {
	p := g.cfg.Player
	scale := p.IndicatorScale
	bodyW, bodyH := p.Width*scale, p.Height*scale
	shotW, shotH := g.cfg.Bullet.Width*scale, g.cfg.Bullet.Height*scale
	pt := ss.Vec2{X: p.LivesX, Y: p.LivesY}
	g.indicators = make([]*ss.Shape, 0, p.Lives)
	for i := 0; i < p.Lives; i++ {
		grp := ss.NewGroup(fmt.Sprintf("life-%d", i))
		grp.SetPos(pt)

		body := ss.NewRectangle("life-body", bodyW, bodyH)
		body.Color = g.cfg.Colors.Player
		grp.AddChild(body)

		shot := ss.NewRectangle("life-bullet", shotW, shotH)
		shot.Color = g.cfg.Colors.Bullet
		shot.SetPos(ss.Vec2{X: (bodyW - shotW) / 2, Y: -bodyH / 2})
		grp.AddChild(shot)

		g.indicators = append(g.indicators, grp)
		g.scene.Enqueue(grp, i < p.Lives-1)
		pt.X += bodyW + p.IndicatorGap
	}
}

func (g *Game) buildPlayer() {
	p := g.cfg.Player
	g.player = ss.NewRectangle("player", p.Width, p.Height)
	g.player.Color = g.cfg.Colors.Player
	g.player.SetPos(ss.Vec2{X: p.StartX, Y: p.StartY})
	g.player.SetMotion(0, 90)
	g.scene.Enqueue(g.player, true)

	g.bullet = ss.NewRectangle("player-bullet", g.cfg.Bullet.Width, g.cfg.Bullet.Height)
	g.bullet.Color = g.cfg.Colors.Bullet
	g.bullet.SetMotion(p.BulletSpeed, 0)
	g.scene.Enqueue(g.bullet, true)
}

func (g *Game) buildShip() {
	s := g.cfg.Ship
	g.ship = ss.NewBitmap("ship", g.sprites.Ship, s.Width, s.Height)
	g.ship.Color = g.cfg.Colors.Ship
	g.ship.SetPos(g.shipSpawnPos())
	g.ship.SetMotion(s.Speed, 90)
	g.ship.SetActive(false)
	g.scene.Enqueue(g.ship, false)
}

func (g *Game) shipSpawnPos() ss.Vec2 {
	th := g.cfg.Screen.TextHeight
	return ss.Vec2{Y: th*3 + (g.cfg.Screen.ShipLane-g.cfg.Ship.Height)/2}
}

func (g *Game) buildHUD() {
	th := g.cfg.Screen.TextHeight
	colors := g.cfg.Colors

	g.scoreText = ss.NewText("score", formatScore(0), 200, th, ss.TextAlignCenter)
	g.scoreText.Color = colors.Text
	g.scoreText.SetPos(ss.Vec2{Y: th * 1.5})
	g.scene.Enqueue(g.scoreText, true)

	g.scoreLabel = ss.NewText("score-label", "Score", 200, th, ss.TextAlignCenter)
	g.scoreLabel.Color = colors.Text
	g.scoreLabel.SetPos(ss.Vec2{Y: th * 0.5})
	g.scene.Enqueue(g.scoreLabel, true)

	g.shipScoreText = ss.NewText("ship-score", fmt.Sprint(g.cfg.Ship.Score), g.cfg.Ship.Width, th, ss.TextAlignCenter)
	g.shipScoreText.Color = colors.Ship
	g.shipScoreText.SetActive(false)
	g.scene.Enqueue(g.shipScoreText, false)

	w, h := float64(g.cfg.Screen.Width), float64(g.cfg.Screen.Height)
	g.gameOverText = ss.NewText("game-over", "Game Over", w, h/10, ss.TextAlignCenter)
	g.gameOverText.Color = colors.GameOver
	g.gameOverText.SetPos(ss.Vec2{Y: h / 2})
	g.gameOverText.SetActive(false)
	g.scene.Enqueue(g.gameOverText, false)
}

func formatScore(n int) string {
	return fmt.Sprintf("%06d", n)
}
