package invaders

import (
	"github.com/tanema/gween/ease"

	ss "github.com/bjorn2code64/shapeshifter"
)

// updateShip flies the bonus ship across its lane and launches a new one on
// the spawn timer.
func (g *Game) updateShip(tick uint64) {
	if g.ship.IsActive() {
		if g.ship.WillHitBounds(g.scene.ScreenSize()).OK() {
			g.ship.Move()
		} else {
			g.ship.SetActive(false)
		}
	}
	if g.shipGate.Elapsed(tick) {
		g.ship.SetPos(g.shipSpawnPos())
		g.ship.SetActive(true)
		g.logf("ship launched")
	}
}

// killShip scores the bonus ship and floats its value up from where it died.
func (g *Game) killShip(tick uint64) {
	g.ship.SetActive(false)
	g.bulletState = BulletDocked
	g.addScore(g.cfg.Ship.Score)

	at := g.ship.Pos()
	g.shipScoreText.SetPos(at)
	g.shipScoreText.Alpha = 1
	g.shipScoreText.SetActive(true)
	g.shipScoreGate.SetActive(true, tick)

	dur := float32(g.cfg.Ship.ScoreDisplayMs) / 1000
	g.shipScoreFx = ss.TweenSet{
		ss.TweenPosition(g.shipScoreText, at.X, at.Y-g.cfg.Ship.ScoreRise, dur, ease.OutQuad),
		ss.TweenAlpha(g.shipScoreText, 0.25, dur, ease.InQuad),
	}
	g.logf("ship hit at x=%.0f", at.X)
}

// updateShipScore animates the floating ship score and hides it when its
// display time is up.
func (g *Game) updateShipScore(tick uint64, dt float32) {
	g.shipScoreFx.Update(dt)
	if g.shipScoreGate.Elapsed(tick) {
		g.shipScoreGate.SetActive(false, tick)
		g.shipScoreText.SetActive(false)
		g.shipScoreFx = nil
	}
}
