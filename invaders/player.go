package invaders

import (
	ss "github.com/bjorn2code64/shapeshifter"
)

// handlePlayerInput steers the cannon from held keys and launches the bullet
// on a fire press. Left wins when both directions are held.
func (g *Game) handlePlayerInput(in ss.Input) {
	speed := g.cfg.Player.Speed
	switch {
	case in.IsDown(ss.KeyLeft):
		g.player.SetMotion(speed, -90)
	case in.IsDown(ss.KeyRight):
		g.player.SetMotion(speed, 90)
	default:
		g.player.SetSpeed(0)
	}

	if in.IsPressed(ss.KeyFire) && g.bulletState == BulletDocked && g.bullet.IsActive() {
		g.bulletState = BulletInFlight
		g.logf("fire from x=%.0f", g.bullet.Pos().X)
	}
}

// movePlayer moves the cannon one step, or turns it around at a wall. The
// turn does not clamp, so a cannon already past the edge stays there until
// the player steers back.
func (g *Game) movePlayer() {
	if !g.player.IsActive() {
		return
	}
	if g.player.WillHitBounds(g.scene.ScreenSize()).OK() {
		g.player.Move()
	} else {
		g.player.BounceX()
	}
}

// dockBullet parks the bullet centered above the cannon.
func (g *Game) dockBullet() {
	g.bulletState = BulletDocked
	g.pinBullet()
}

func (g *Game) pinBullet() {
	p := g.player.Pos()
	g.bullet.SetPos(ss.Vec2{
		X: p.X + (g.cfg.Player.Width-g.cfg.Bullet.Width)/2,
		Y: p.Y - g.cfg.Player.Height/2,
	})
}

// movePlayerBullet advances a flying bullet and resolves the first thing it
// hits: a barrier cell, then an invader, then the bonus ship. A docked
// bullet follows the cannon.
func (g *Game) movePlayerBullet(tick uint64) {
	if g.bullet.IsActive() && g.bulletState == BulletInFlight {
		if !g.bullet.WillHitBounds(g.scene.ScreenSize()).OK() {
			g.bulletState = BulletDocked
		} else {
			g.bullet.Move()
			g.resolvePlayerHit(tick)
		}
	}
	if g.bulletState == BulletDocked {
		g.pinBullet()
	}
}

func (g *Game) resolvePlayerHit(tick uint64) {
	for _, cell := range g.barriers {
		if cell.IsActive() && g.bullet.HitTestShape(cell) {
			cell.SetActive(false)
			g.bulletState = BulletDocked
			return
		}
	}

	for _, inv := range g.invaders {
		if inv.Shape.IsActive() && inv.Shape.HitTestShape(g.bullet) {
			g.killInvader(inv)
			return
		}
	}

	if g.ship.IsActive() && g.ship.HitTestShape(g.bullet) {
		g.killShip(tick)
	}
}

// killInvader scores an invader, hurries the formation and makes the
// survivors fire more often.
func (g *Game) killInvader(inv *Invader) {
	inv.Shape.SetActive(false)
	g.bulletState = BulletDocked
	g.addScore(g.cfg.Invader.Scores[inv.Species])
	g.formationGate.AdjustPeriod(-g.cfg.Invader.SpeedUpMs)
	if g.fireChance > 1 {
		g.fireChance--
	}
	g.logf("hit %s at col %d row %d, %d left", inv.Species, inv.Col, inv.Row, g.ActiveInvaders())
}

func (g *Game) addScore(n int) {
	g.score += n
	g.scoreText.SetText(formatScore(g.score))
}

// loseLife is called when an invader bullet hits the cannon. With lives left
// the respawn timer is armed; otherwise the round is over and both the
// respawn and formation timers stay frozen.
func (g *Game) loseLife(tick uint64) {
	if g.lives > 0 {
		g.lives--
	}
	g.player.SetActive(false)
	g.bullet.SetActive(false)

	if g.lives == 0 {
		g.gameOverText.SetActive(true)
		g.respawnGate.SetActive(false, tick)
		g.formationGate.SetActive(false, tick)
		g.logf("game over, score %d", g.score)
		g.notify(ss.NotifyGameOver)
		return
	}
	g.respawnGate.SetActive(true, tick)
	g.logf("player hit, %d lives left", g.lives)
}

// updateRespawn brings the cannon back at its start position once the
// respawn delay has passed.
func (g *Game) updateRespawn(tick uint64) {
	if !g.respawnGate.Elapsed(tick) {
		return
	}
	g.respawnGate.SetActive(false, tick)
	g.player.SetPos(ss.Vec2{X: g.cfg.Player.StartX, Y: g.cfg.Player.StartY})
	g.player.SetActive(true)
	g.bullet.SetActive(true)
	g.dockBullet()
	g.updateIndicators()
	g.logf("respawn")
}

// updateIndicators shows one indicator per spare life.
func (g *Game) updateIndicators() {
	for i, ind := range g.indicators {
		ind.SetActive(i < g.lives-1)
	}
}
