package invaders

import (
	"fmt"
	"math/rand/v2"
	"os"

	ss "github.com/bjorn2code64/shapeshifter"
)

// BulletState tracks the player's single bullet.
type BulletState uint8

const (
	BulletDocked   BulletState = iota // pinned above the player's cannon
	BulletInFlight                    // travelling upward
)

// Game is one round of invaders running on a Scene. It installs itself as the
// scene's update and deinit functions; the shell only steps the scene.
type Game struct {
	cfg      Config
	scene    *ss.Scene
	notifier ss.Notifier
	rng      *rand.Rand
	sprites  Sprites
	debug    bool

	player      *ss.Shape
	bullet      *ss.Shape
	bulletState BulletState
	indicators  []*ss.Shape
	invaders    []*Invader
	barriers    []*ss.Shape
	enemyShots  []*ss.Shape
	ship        *ss.Shape

	scoreText     *ss.Shape
	scoreLabel    *ss.Shape
	shipScoreText *ss.Shape
	gameOverText  *ss.Shape
	shipScoreFx   ss.TweenSet

	formationGate *ss.TickGate
	respawnGate   *ss.TickGate
	shipGate      *ss.TickGate
	shipScoreGate *ss.TickGate

	score      int
	lives      int
	fireChance int
	animFrame  int
	lastTick   uint64
	running    bool
}

// New creates a round bound to scene and installs its update and deinit
// hooks. A nil notifier drops notifications; a nil rng gets a fixed seed.
func New(cfg Config, scene *ss.Scene, notifier ss.Notifier, rng *rand.Rand) *Game {
	if scene == nil {
		panic("invaders: nil scene")
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	g := &Game{
		cfg:      cfg,
		scene:    scene,
		notifier: notifier,
		rng:      rng,
		sprites:  NewSprites(cfg),
	}
	scene.SetUpdateFunc(g.Update)
	scene.SetDeInitFunc(g.DeInit)
	return g
}

// SetDebug enables per-event logging to stderr.
func (g *Game) SetDebug(enabled bool) {
	g.debug = enabled
}

// Sprites returns the bitmap set the round draws with.
func (g *Game) Sprites() Sprites {
	return g.sprites
}

func (g *Game) logf(format string, args ...any) {
	if g.debug {
		fmt.Fprintf(os.Stderr, "[invaders] "+format+"\n", args...)
	}
}

func (g *Game) notify(n ss.Notification) {
	g.logf("notify %s", n)
	if g.notifier != nil {
		g.notifier.Notify(n)
	}
}

// Init builds the round and queues every shape on the scene. now is the tick
// the round's timers start from. Calling Init on a running round restarts it.
func (g *Game) Init(now uint64) {
	if g.running {
		g.DeInit()
	}
	c := g.cfg
	g.score = 0
	g.lives = c.Player.Lives
	g.fireChance = c.Invader.FireChance
	g.animFrame = frameClosed
	g.bulletState = BulletDocked
	g.lastTick = now

	g.formationGate = ss.NewTickGate(c.Invader.MoveDelayMs, true, now)
	g.respawnGate = ss.NewTickGate(c.Player.RespawnDelayMs, false, now)
	g.shipGate = ss.NewTickGate(c.Ship.SpawnMs, true, now)
	g.shipScoreGate = ss.NewTickGate(c.Ship.ScoreDisplayMs, false, now)

	g.buildInvaders()
	g.buildBarriers()
	g.buildIndicators()
	g.buildPlayer()
	g.buildShip()
	g.buildHUD()

	g.updateIndicators()
	g.dockBullet()
	g.running = true
	g.logf("init: %d invaders, %d barrier cells, %d lives", len(g.invaders), len(g.barriers), g.lives)
}

// DeInit releases every shape the round created. The scene calls it from
// Scene.DeInit; calling it directly is also safe.
func (g *Game) DeInit() {
	if !g.running {
		return
	}
	for _, inv := range g.invaders {
		g.release(inv.Shape)
	}
	for _, s := range g.barriers {
		g.release(s)
	}
	for _, s := range g.enemyShots {
		g.release(s)
	}
	for _, s := range g.indicators {
		g.release(s)
	}
	for _, s := range []*ss.Shape{g.player, g.bullet, g.ship, g.scoreText, g.scoreLabel, g.shipScoreText, g.gameOverText} {
		g.release(s)
	}
	g.invaders = nil
	g.barriers = nil
	g.enemyShots = nil
	g.indicators = nil
	g.shipScoreFx = nil
	g.running = false
	g.logf("deinit")
}

// release takes a shape off the scene and disposes it.
func (g *Game) release(s *ss.Shape) {
	if s == nil || s.IsDisposed() {
		return
	}
	g.scene.RemoveShape(s)
	s.Dispose()
}

// Update runs one frame of the round in a fixed order: player input,
// formation, player, player bullet, invader fire, invader bullets, bonus
// ship, respawn, then queued key events. It always returns true; quitting
// is signalled through the notifier.
func (g *Game) Update(f *ss.Frame) bool {
	if !g.running {
		return true
	}
	dt := float32(0)
	if f.Tick > g.lastTick {
		dt = float32(f.Tick-g.lastTick) / 1000
	}
	g.lastTick = f.Tick

	g.handlePlayerInput(f.Input)
	g.moveFormation(f.Tick)
	g.movePlayer()
	g.movePlayerBullet(f.Tick)
	if g.lives > 0 {
		g.fireInvaderBullets()
	}
	g.moveInvaderBullets(f.Tick)
	if g.lives > 0 {
		g.updateShip(f.Tick)
	}
	g.updateShipScore(f.Tick, dt)
	g.updateRespawn(f.Tick)
	g.handleEvents(f.Events)
	return true
}

func (g *Game) handleEvents(q *ss.EventQueue) {
	if q == nil {
		return
	}
	for {
		e, ok := q.Pop()
		if !ok {
			return
		}
		if e.Type == ss.EventKeyDown && e.Key == ss.KeyEscape {
			g.notify(ss.NotifyQuit)
		}
	}
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives, including the one in play.
func (g *Game) Lives() int { return g.lives }

// GameOver reports whether the last life has been lost.
func (g *Game) GameOver() bool { return g.running && g.lives == 0 }

// FireChance returns the current fire-chance denominator.
func (g *Game) FireChance() int { return g.fireChance }

// Player returns the player's cannon.
func (g *Game) Player() *ss.Shape { return g.player }

// PlayerBullet returns the player's bullet and whether it is docked or flying.
func (g *Game) PlayerBullet() (*ss.Shape, BulletState) { return g.bullet, g.bulletState }

// Invaders returns the formation in column-major order.
func (g *Game) Invaders() []*Invader { return g.invaders }

// ActiveInvaders counts the invaders still alive.
func (g *Game) ActiveInvaders() int {
	n := 0
	for _, inv := range g.invaders {
		if inv.Shape.IsActive() {
			n++
		}
	}
	return n
}

// Barriers returns every barrier cell, barrier by barrier.
func (g *Game) Barriers() []*ss.Shape { return g.barriers }

// InvaderBullets returns the invader bullets in flight.
func (g *Game) InvaderBullets() []*ss.Shape { return g.enemyShots }

// Ship returns the bonus ship.
func (g *Game) Ship() *ss.Shape { return g.ship }

// Indicators returns the lives indicator groups, left to right.
func (g *Game) Indicators() []*ss.Shape { return g.indicators }

// ScoreText returns the HUD score label.
func (g *Game) ScoreText() *ss.Shape { return g.scoreText }

// ShipScoreText returns the floating label shown after a bonus ship hit.
func (g *Game) ShipScoreText() *ss.Shape { return g.shipScoreText }

// GameOverText returns the centered "Game Over" banner.
func (g *Game) GameOverText() *ss.Shape { return g.gameOverText }

// FormationPeriod returns the current delay between formation moves in ms.
func (g *Game) FormationPeriod() uint64 { return g.formationGate.Period() }

// FormationMoving reports whether the formation timer is still running.
func (g *Game) FormationMoving() bool { return g.formationGate.Active() }

// RespawnPending reports whether a respawn is scheduled.
func (g *Game) RespawnPending() bool { return g.respawnGate.Active() }
