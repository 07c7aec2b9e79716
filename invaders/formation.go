package invaders

import (
	ss "github.com/bjorn2code64/shapeshifter"
)

// moveFormation steps every live invader sideways on the formation timer and
// flips the animation frame. If any of them would leave the screen the whole
// formation reverses and drops instead.
func (g *Game) moveFormation(tick uint64) {
	if !g.formationGate.Elapsed(tick) {
		return
	}

	g.animFrame ^= 1
	for _, inv := range g.invaders {
		inv.Shape.SetBitmap(g.sprites.Invaders[inv.Species][g.animFrame])
	}

	screen := g.scene.ScreenSize()
	turn := false
	for _, inv := range g.invaders {
		if inv.Shape.IsActive() && !inv.Shape.WillHitBounds(screen).OK() {
			turn = true
			break
		}
	}

	drop := ss.Vec2{Y: g.cfg.Invader.Drop}
	for _, inv := range g.invaders {
		if !inv.Shape.IsActive() {
			continue
		}
		if turn {
			inv.Shape.BounceX()
			inv.Shape.OffsetPos(drop)
		} else {
			inv.Shape.Move()
		}
	}
}

// fireInvaderBullets gives every live invader the same chance to fire. The
// chance is 1 in fireChance*live, so the formation as a whole fires about
// once per fireChance frames and speeds up as fireChance falls.
func (g *Game) fireInvaderBullets() {
	live := g.ActiveInvaders()
	if live == 0 {
		return
	}
	n := g.fireChance * live
	for _, inv := range g.invaders {
		if inv.Shape.IsActive() && g.rng.IntN(n) == 0 {
			g.spawnInvaderBullet(inv.Shape.Pos())
		}
	}
}

// spawnInvaderBullet starts a bullet just below the invader at p. It is
// tracked immediately and joins the scene on the next frame.
func (g *Game) spawnInvaderBullet(p ss.Vec2) {
	c := g.cfg
	b := ss.NewRectangle("invader-bullet", c.Bullet.Width, c.Bullet.Height)
	b.Color = c.Colors.Bullet
	b.SetPos(ss.Vec2{
		X: p.X + (c.Invader.Width-c.Bullet.Width)/2,
		Y: p.Y + c.Invader.Height,
	})
	b.SetMotion(c.Invader.BulletSpeed, 180)
	g.enemyShots = append(g.enemyShots, b)
	g.scene.Enqueue(b, true)
}

// moveInvaderBullets advances invader bullets and resolves what they hit.
// A bullet that touches barrier cells takes all of them out.
func (g *Game) moveInvaderBullets(tick uint64) {
	screen := g.scene.ScreenSize()
	for i := 0; i < len(g.enemyShots); {
		b := g.enemyShots[i]
		if !b.WillHitBounds(screen).OK() {
			g.dropInvaderBullet(i)
			continue
		}
		b.Move()

		hit := false
		for _, cell := range g.barriers {
			if cell.IsActive() && b.HitTestShape(cell) {
				cell.SetActive(false)
				hit = true
			}
		}
		if hit {
			g.dropInvaderBullet(i)
			continue
		}

		if g.player.IsActive() && b.HitTestShape(g.player) {
			g.dropInvaderBullet(i)
			g.loseLife(tick)
			continue
		}
		i++
	}
}

func (g *Game) dropInvaderBullet(i int) {
	g.release(g.enemyShots[i])
	copy(g.enemyShots[i:], g.enemyShots[i+1:])
	g.enemyShots[len(g.enemyShots)-1] = nil
	g.enemyShots = g.enemyShots[:len(g.enemyShots)-1]
}
