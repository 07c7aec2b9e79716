package invaders

import (
	"math/rand/v2"
	"testing"

	ss "github.com/bjorn2code64/shapeshifter"
)

// stuckSource returns the same value forever. With ^uint64(0), IntN(n) never
// returns 0 for n > 1, so invaders never fire.
type stuckSource uint64

func (s stuckSource) Uint64() uint64 { return uint64(s) }

func quietRNG() *rand.Rand { return rand.New(stuckSource(^uint64(0))) }

type harness struct {
	t      *testing.T
	scene  *ss.Scene
	game   *Game
	tick   uint64
	down   ss.KeySet
	events ss.EventQueue
	notes  []ss.Notification
}

func newHarness(t *testing.T, cfg Config, rng *rand.Rand) *harness {
	t.Helper()
	h := &harness{t: t}
	h.scene = ss.NewScene(ss.Size{Width: cfg.Screen.Width, Height: cfg.Screen.Height})
	h.game = New(cfg, h.scene, ss.NotifierFunc(func(n ss.Notification) {
		h.notes = append(h.notes, n)
	}), rng)
	h.game.Init(0)
	h.step(0)
	return h
}

// step advances the clock by dt ms and runs one frame with keys held.
func (h *harness) step(dt uint64, keys ...ss.Key) {
	h.t.Helper()
	h.tick += dt
	down := ss.KeySetOf(keys...)
	f := &ss.Frame{Tick: h.tick, Input: ss.NextInput(h.down, down), Events: &h.events}
	h.down = down
	ok, err := h.scene.Step(f)
	if err != nil {
		h.t.Fatalf("Step: %v", err)
	}
	if !ok {
		h.t.Fatal("Step returned false")
	}
}

func (h *harness) hideInvaders() {
	for _, inv := range h.game.invaders {
		inv.Shape.SetActive(false)
	}
}

func (h *harness) invader(col, row int) *Invader {
	return h.game.invaders[col*h.game.cfg.Invader.Rows+row]
}

// --- Round start ---

func TestRoundStart(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	g := h.game

	if got := len(g.Invaders()); got != 50 {
		t.Fatalf("invaders = %d, want 50", got)
	}
	if got := g.ActiveInvaders(); got != 50 {
		t.Errorf("active invaders = %d, want 50", got)
	}
	if g.Lives() != 3 {
		t.Errorf("Lives = %d, want 3", g.Lives())
	}
	if g.FireChance() != 60 {
		t.Errorf("FireChance = %d, want 60", g.FireChance())
	}
	shown := 0
	for _, ind := range g.Indicators() {
		if ind.IsActive() {
			shown++
		}
	}
	if shown != 2 {
		t.Errorf("indicators shown = %d, want 2", shown)
	}
	if g.ScoreText().Text != "000000" {
		t.Errorf("score text = %q, want %q", g.ScoreText().Text, "000000")
	}
	if g.Ship().IsActive() || g.GameOverText().IsActive() || g.ShipScoreText().IsActive() {
		t.Error("ship, game over and ship score should start hidden")
	}
	if g.GameOver() {
		t.Error("GameOver should be false at start")
	}
}

func TestRoundStartLayout(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())

	cases := []struct {
		col, row int
		pos      ss.Vec2
		species  Species
	}{
		{0, 0, ss.Vec2{X: 10, Y: 114}, SpeciesSquid},
		{0, 1, ss.Vec2{X: 10, Y: 164}, SpeciesCrab},
		{3, 2, ss.Vec2{X: 220, Y: 214}, SpeciesCrab},
		{9, 4, ss.Vec2{X: 640, Y: 314}, SpeciesOctopus},
	}
	for _, tc := range cases {
		inv := h.invader(tc.col, tc.row)
		if inv.Col != tc.col || inv.Row != tc.row {
			t.Errorf("invader order: got (%d,%d), want (%d,%d)", inv.Col, inv.Row, tc.col, tc.row)
		}
		if inv.Shape.Pos() != tc.pos {
			t.Errorf("invader (%d,%d) pos = %v, want %v", tc.col, tc.row, inv.Shape.Pos(), tc.pos)
		}
		if inv.Species != tc.species {
			t.Errorf("invader (%d,%d) species = %v, want %v", tc.col, tc.row, inv.Species, tc.species)
		}
	}

	if got := len(h.game.Barriers()); got != 4*8*6 {
		t.Errorf("barrier cells = %d, want %d", got, 4*8*6)
	}
	first := h.game.Barriers()[0]
	if first.Pos() != (ss.Vec2{X: 75, Y: 900}) {
		t.Errorf("first barrier cell pos = %v, want (75, 900)", first.Pos())
	}
	if first.Width != 13.5 {
		t.Errorf("barrier cell width = %v, want 13.5", first.Width)
	}

	b, state := h.game.PlayerBullet()
	if state != BulletDocked {
		t.Errorf("bullet state = %v, want docked", state)
	}
	if b.Pos() != (ss.Vec2{X: 37.5, Y: 985}) {
		t.Errorf("docked bullet pos = %v, want (37.5, 985)", b.Pos())
	}
}

func TestRoundStartQueuesUntilFirstFrame(t *testing.T) {
	cfg := DefaultConfig()
	scene := ss.NewScene(ss.Size{Width: cfg.Screen.Width, Height: cfg.Screen.Height})
	g := New(cfg, scene, nil, quietRNG())
	g.Init(0)

	if len(scene.Shapes()) != 0 {
		t.Errorf("live shapes before first frame = %d, want 0", len(scene.Shapes()))
	}
	if scene.Pending() == 0 {
		t.Fatal("Init should queue shapes")
	}
	pending := scene.Pending()
	if _, err := scene.Step(&ss.Frame{}); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(scene.Shapes()) != pending {
		t.Errorf("live shapes = %d, want %d", len(scene.Shapes()), pending)
	}
}

// --- Player ---

func TestPlayerMovesWithHeldKeys(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	p := h.game.Player()

	h.step(16, ss.KeyRight)
	h.step(16, ss.KeyRight)
	if p.Pos().X != 20 {
		t.Errorf("after two right frames x = %v, want 20", p.Pos().X)
	}
	h.step(16)
	if p.Pos().X != 20 {
		t.Errorf("released keys should stop the player, x = %v", p.Pos().X)
	}
	h.step(16, ss.KeyLeft)
	if p.Pos().X != 10 {
		t.Errorf("after left frame x = %v, want 10", p.Pos().X)
	}

	b, _ := h.game.PlayerBullet()
	if b.Pos().X != 10+37.5 {
		t.Errorf("docked bullet x = %v, want %v", b.Pos().X, 10+37.5)
	}
}

func TestPlayerBouncesOffWall(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	p := h.game.Player()

	// At x=0 a left step would cross the edge, so the heading flips instead.
	h.step(16, ss.KeyLeft)
	if p.Pos().X != 0 {
		t.Errorf("x = %v, want 0", p.Pos().X)
	}
	if p.Direction() != 90 {
		t.Errorf("direction = %v, want 90", p.Direction())
	}
}

func TestPlayerBulletFlightAndDock(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	h.hideInvaders()
	b, _ := h.game.PlayerBullet()

	h.step(16, ss.KeyFire)
	if _, state := h.game.PlayerBullet(); state != BulletInFlight {
		t.Fatalf("state after fire = %v, want in flight", state)
	}
	if b.Pos().Y != 965 {
		t.Errorf("y after fire frame = %v, want 965", b.Pos().Y)
	}

	prev := b.Pos().Y
	frames := 0
	for {
		// Holding fire must not relaunch or reset the bullet.
		h.step(16, ss.KeyFire, ss.KeyRight)
		frames++
		if frames > 100 {
			t.Fatal("bullet never docked")
		}
		if _, state := h.game.PlayerBullet(); state == BulletDocked {
			break
		}
		if prev-b.Pos().Y != 20 {
			t.Fatalf("frame %d: moved %v, want 20", frames, prev-b.Pos().Y)
		}
		prev = b.Pos().Y
	}
	if prev >= 20 {
		t.Errorf("bullet docked at y=%v before reaching the top", prev)
	}

	p := h.game.Player().Pos()
	want := ss.Vec2{X: p.X + 37.5, Y: p.Y - 15}
	if b.Pos() != want {
		t.Errorf("bullet re-pinned at %v, want %v", b.Pos(), want)
	}
}

func TestPlayerBulletSingleInstance(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	h.hideInvaders()
	for i := 0; i < 200; i++ {
		if i%2 == 0 {
			h.step(16, ss.KeyFire)
		} else {
			h.step(16)
		}
	}
	n := 0
	for _, s := range h.scene.Shapes() {
		if s.Name == "player-bullet" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("player bullets in scene = %d, want 1", n)
	}
}

func TestPlayerBulletHitsInvader(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	g := h.game
	target := h.invader(0, 4)

	h.step(16, ss.KeyFire)
	for i := 0; g.Score() == 0; i++ {
		if i > 60 {
			t.Fatal("bullet never hit")
		}
		h.step(16)
	}

	if target.Shape.IsActive() {
		t.Error("hit invader should be inactive")
	}
	if g.Score() != 10 {
		t.Errorf("Score = %d, want 10", g.Score())
	}
	if g.ScoreText().Text != "000010" {
		t.Errorf("score text = %q", g.ScoreText().Text)
	}
	if g.FormationPeriod() != 985 {
		t.Errorf("formation period = %d, want 985", g.FormationPeriod())
	}
	if g.FireChance() != 59 {
		t.Errorf("FireChance = %d, want 59", g.FireChance())
	}
	if _, state := g.PlayerBullet(); state != BulletDocked {
		t.Errorf("bullet state = %v, want docked", state)
	}
	if g.ActiveInvaders() != 49 {
		t.Errorf("active invaders = %d, want 49", g.ActiveInvaders())
	}
}

func TestPlayerBulletHitsOneThingPerFrame(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	g := h.game

	// Park an invader and the ship on top of the first barrier cell.
	inv := h.invader(0, 0)
	inv.Shape.SetPos(ss.Vec2{X: 60, Y: 880})
	g.Ship().SetPos(ss.Vec2{X: 60, Y: 890})
	g.Ship().SetActive(true)

	g.bullet.SetPos(ss.Vec2{X: 76, Y: 915})
	g.bulletState = BulletInFlight
	h.step(16)

	off := 0
	for _, cell := range g.Barriers() {
		if !cell.IsActive() {
			off++
		}
	}
	if off != 1 {
		t.Errorf("barrier cells knocked out = %d, want 1", off)
	}
	if !inv.Shape.IsActive() {
		t.Error("invader behind the barrier should survive")
	}
	if g.Score() != 0 {
		t.Errorf("Score = %d, want 0", g.Score())
	}
	if _, state := g.PlayerBullet(); state != BulletDocked {
		t.Errorf("bullet state = %v, want docked", state)
	}
}

func TestPlayerBulletHitsShip(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	g := h.game

	g.Ship().SetPos(ss.Vec2{X: 400, Y: 69})
	g.Ship().SetActive(true)
	g.bullet.SetPos(ss.Vec2{X: 420, Y: 95})
	g.bulletState = BulletInFlight
	h.step(16)

	if g.Ship().IsActive() {
		t.Error("ship should be inactive after hit")
	}
	if g.Score() != 100 {
		t.Errorf("Score = %d, want 100", g.Score())
	}
	label := g.ShipScoreText()
	if !label.IsActive() {
		t.Fatal("ship score label should show")
	}
	if label.Text != "100" {
		t.Errorf("label text = %q, want %q", label.Text, "100")
	}
	startY := label.Pos().Y

	h.step(1000)
	if !label.IsActive() {
		t.Error("label should still show after 1s")
	}
	if label.Pos().Y >= startY {
		t.Errorf("label should float up: y = %v, start %v", label.Pos().Y, startY)
	}
	if label.Alpha >= 1 {
		t.Errorf("label should fade: alpha = %v", label.Alpha)
	}

	h.step(1000)
	if label.IsActive() {
		t.Error("label should hide after its display time")
	}
}

// --- Formation ---

func TestFormationStepsOnTimer(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	inv := h.invader(0, 0)
	start := inv.Shape.Pos()

	h.step(999)
	if inv.Shape.Pos() != start {
		t.Errorf("formation moved before its period: %v", inv.Shape.Pos())
	}
	h.step(1)
	if inv.Shape.Pos().X != start.X+25 {
		t.Errorf("x = %v, want %v", inv.Shape.Pos().X, start.X+25)
	}
	if inv.Shape.Bitmap != h.game.Sprites().Invaders[SpeciesSquid][frameOpen] {
		t.Error("first formation step should show the open frame")
	}
	h.step(1000)
	if inv.Shape.Bitmap != h.game.Sprites().Invaders[SpeciesSquid][frameClosed] {
		t.Error("second formation step should show the closed frame")
	}
}

func TestFormationReversesTogether(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	dead := h.invader(4, 2)
	dead.Shape.SetActive(false)
	deadPos := dead.Shape.Pos()

	start := make(map[*Invader]ss.Vec2)
	for _, inv := range h.game.Invaders() {
		start[inv] = inv.Shape.Pos()
	}

	// The rightmost column reaches the edge after 12 steps.
	for i := 0; i < 12; i++ {
		h.step(1000)
	}
	for inv, p := range start {
		if !inv.Shape.IsActive() {
			continue
		}
		if got := inv.Shape.Pos(); got.X != p.X+300 || got.Y != p.Y {
			t.Fatalf("invader (%d,%d) at %v, want (%v, %v)", inv.Col, inv.Row, got, p.X+300, p.Y)
		}
	}

	h.step(1000)
	for inv, p := range start {
		if !inv.Shape.IsActive() {
			continue
		}
		if got := inv.Shape.Pos(); got.X != p.X+300 || got.Y != p.Y+60 {
			t.Errorf("invader (%d,%d) at %v after turn, want (%v, %v)", inv.Col, inv.Row, got, p.X+300, p.Y+60)
		}
		if inv.Shape.Direction() != -90 {
			t.Errorf("invader (%d,%d) direction = %v, want -90", inv.Col, inv.Row, inv.Shape.Direction())
		}
	}
	if dead.Shape.Pos() != deadPos {
		t.Errorf("inactive invader moved to %v", dead.Shape.Pos())
	}

	h.step(1000)
	if got := h.invader(0, 0).Shape.Pos().X; got != start[h.invader(0, 0)].X+275 {
		t.Errorf("x after turn = %v, want %v", got, start[h.invader(0, 0)].X+275)
	}
}

// --- Invader fire ---

func singleInvaderConfig() Config {
	cfg := DefaultConfig()
	cfg.Invader.Cols = 1
	cfg.Invader.Rows = 1
	cfg.Invader.FireChance = 1
	return cfg
}

func TestInvaderFires(t *testing.T) {
	// One invader with a denominator of 1 fires every frame.
	h := newHarness(t, singleInvaderConfig(), rand.New(rand.NewPCG(1, 1)))
	g := h.game

	shots := g.InvaderBullets()
	if len(shots) != 1 {
		t.Fatalf("bullets after first frame = %d, want 1", len(shots))
	}
	// A new bullet is tracked and moved in the frame it is fired, but only
	// joins the scene at the next frame boundary.
	inv := h.invader(0, 0).Shape.Pos()
	want := ss.Vec2{X: inv.X + 27.5, Y: inv.Y + 40 + 15}
	if shots[0].Pos() != want {
		t.Errorf("bullet at %v, want %v", shots[0].Pos(), want)
	}
	if h.scene.Pending() != 1 {
		t.Errorf("bullet should wait in the pending queue, pending = %d", h.scene.Pending())
	}

	first := shots[0]
	h.step(16)
	if first.Pos().Y != want.Y+15 {
		t.Errorf("bullet y = %v, want %v", first.Pos().Y, want.Y+15)
	}
	if len(g.InvaderBullets()) != 2 {
		t.Errorf("bullets = %d, want 2", len(g.InvaderBullets()))
	}
	live := false
	for _, s := range h.scene.Shapes() {
		if s == first {
			live = true
		}
	}
	if !live {
		t.Error("first bullet should be live after the next frame")
	}
}

func TestInvaderBulletLeavesScreen(t *testing.T) {
	cfg := singleInvaderConfig()
	cfg.Barrier.Count = 0
	cfg.Invader.FireChance = 1 << 20
	h := newHarness(t, cfg, quietRNG())
	g := h.game

	// Away from the player so nothing stops it.
	g.spawnInvaderBullet(ss.Vec2{X: 900, Y: 1000})
	b := g.InvaderBullets()[0]
	for i := 0; len(g.InvaderBullets()) > 0; i++ {
		if i > 10 {
			t.Fatal("bullet never left the screen")
		}
		h.step(16)
	}
	if !b.IsDisposed() {
		t.Error("retired bullet should be disposed")
	}
	for _, s := range h.scene.Shapes() {
		if s == b {
			t.Error("retired bullet still in scene")
		}
	}
}

func TestInvaderBulletHitsBarrier(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	g := h.game

	// Straddles two barrier columns so both get knocked out.
	g.spawnInvaderBullet(ss.Vec2{X: 60, Y: 830})
	for i := 0; len(g.InvaderBullets()) > 0; i++ {
		if i > 10 {
			t.Fatal("bullet never hit the barrier")
		}
		h.step(16)
	}
	off := 0
	for _, cell := range g.Barriers() {
		if !cell.IsActive() {
			off++
		}
	}
	if off < 2 {
		t.Errorf("cells knocked out = %d, want at least 2", off)
	}
	if g.Lives() != 3 {
		t.Errorf("Lives = %d, want 3", g.Lives())
	}
}

func TestInvaderBulletHitsPlayer(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	g := h.game

	g.spawnInvaderBullet(ss.Vec2{X: 0, Y: 900})
	for i := 0; g.Lives() == 3; i++ {
		if i > 10 {
			t.Fatal("bullet never hit the player")
		}
		h.step(16)
	}
	if g.Lives() != 2 {
		t.Fatalf("Lives = %d, want 2", g.Lives())
	}
	if g.Player().IsActive() {
		t.Error("player should be inactive after a hit")
	}
	if b, _ := g.PlayerBullet(); b.IsActive() {
		t.Error("player bullet should be inactive after a hit")
	}
	if !g.RespawnPending() {
		t.Error("respawn should be scheduled")
	}
	if len(g.InvaderBullets()) != 0 {
		t.Errorf("bullets = %d, want 0", len(g.InvaderBullets()))
	}

	// Move away, then wait out the respawn delay.
	g.Player().SetPos(ss.Vec2{X: 500, Y: 1000})
	h.step(4999)
	if g.Player().IsActive() {
		t.Fatal("player respawned early")
	}
	h.step(1)
	if !g.Player().IsActive() {
		t.Fatal("player should respawn after the delay")
	}
	if g.Player().Pos() != (ss.Vec2{X: 0, Y: 1000}) {
		t.Errorf("respawn pos = %v, want (0, 1000)", g.Player().Pos())
	}
	b, state := g.PlayerBullet()
	if !b.IsActive() || state != BulletDocked {
		t.Errorf("bullet active=%v state=%v, want active and docked", b.IsActive(), state)
	}
	shown := 0
	for _, ind := range g.Indicators() {
		if ind.IsActive() {
			shown++
		}
	}
	if shown != 1 {
		t.Errorf("indicators shown = %d, want 1", shown)
	}
	if g.RespawnPending() {
		t.Error("respawn timer should disarm after firing")
	}
}

func TestGameOver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Player.Lives = 1
	h := newHarness(t, cfg, quietRNG())
	g := h.game

	g.spawnInvaderBullet(ss.Vec2{X: 0, Y: 900})
	for i := 0; g.Lives() == 1; i++ {
		if i > 10 {
			t.Fatal("bullet never hit the player")
		}
		h.step(16)
	}

	if g.Lives() != 0 {
		t.Errorf("Lives = %d, want 0", g.Lives())
	}
	if !g.GameOver() {
		t.Error("GameOver should be true")
	}
	if !g.GameOverText().IsActive() {
		t.Error("game over banner should show")
	}
	if g.FormationMoving() || g.RespawnPending() {
		t.Error("formation and respawn timers should be frozen")
	}
	if len(h.notes) != 1 || h.notes[0] != ss.NotifyGameOver {
		t.Errorf("notifications = %v, want [game-over]", h.notes)
	}

	inv := h.invader(0, 0)
	pos := inv.Shape.Pos()
	for i := 0; i < 20; i++ {
		h.step(5000)
	}
	if inv.Shape.Pos() != pos {
		t.Errorf("formation moved after game over: %v", inv.Shape.Pos())
	}
	if g.Player().IsActive() {
		t.Error("player respawned after game over")
	}
	if g.Ship().IsActive() {
		t.Error("bonus ship launched after game over")
	}
	if g.Lives() != 0 {
		t.Errorf("Lives = %d, want 0", g.Lives())
	}
}

func TestGameOverStopsInvaderFire(t *testing.T) {
	cfg := singleInvaderConfig()
	cfg.Player.Lives = 1
	h := newHarness(t, cfg, rand.New(rand.NewPCG(3, 3)))
	g := h.game

	g.loseLife(h.tick)
	before := len(g.InvaderBullets())
	h.step(16)
	if len(g.InvaderBullets()) > before {
		t.Errorf("bullets grew from %d to %d after game over", before, len(g.InvaderBullets()))
	}
}

func TestLivesFloorAtZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Player.Lives = 1
	h := newHarness(t, cfg, quietRNG())
	h.game.loseLife(h.tick)
	h.game.loseLife(h.tick)
	if h.game.Lives() != 0 {
		t.Errorf("Lives = %d, want 0", h.game.Lives())
	}
}

func TestFireChanceFloorsAtOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Invader.FireChance = 2
	h := newHarness(t, cfg, quietRNG())
	for col := 0; col < 3; col++ {
		h.game.killInvader(h.invader(col, 0))
	}
	if h.game.FireChance() != 1 {
		t.Errorf("FireChance = %d, want 1", h.game.FireChance())
	}
	if h.game.Score() != 90 {
		t.Errorf("Score = %d, want 90", h.game.Score())
	}
}

// --- Bonus ship ---

func TestShipLaunchesAndCrosses(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	g := h.game
	ship := g.Ship()

	h.step(10000)
	if !ship.IsActive() {
		t.Fatal("ship should launch after its spawn delay")
	}
	if ship.Pos() != (ss.Vec2{X: 0, Y: 69}) {
		t.Errorf("ship spawn pos = %v, want (0, 69)", ship.Pos())
	}
	h.step(16)
	if ship.Pos().X != 4 {
		t.Errorf("ship x = %v, want 4", ship.Pos().X)
	}
	for i := 0; ship.IsActive(); i++ {
		if i > 300 {
			t.Fatal("ship never left the screen")
		}
		h.step(16)
	}
	if ship.Pos().X+ship.Width > 1000 {
		t.Errorf("ship crossed the edge before hiding: x = %v", ship.Pos().X)
	}
}

// --- Events and lifecycle ---

func TestEscapeNotifiesQuit(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	h.events.Push(ss.Event{Type: ss.EventKeyUp, Key: ss.KeyEscape})
	h.events.Push(ss.Event{Type: ss.EventKeyDown, Key: ss.KeyFire})
	h.step(16)
	if len(h.notes) != 0 {
		t.Fatalf("notifications = %v, want none", h.notes)
	}
	h.events.Push(ss.Event{Type: ss.EventKeyDown, Key: ss.KeyEscape})
	h.step(16)
	if len(h.notes) != 1 || h.notes[0] != ss.NotifyQuit {
		t.Errorf("notifications = %v, want [quit]", h.notes)
	}
	if h.events.Len() != 0 {
		t.Errorf("event queue not drained: %d left", h.events.Len())
	}
}

func TestDeInitReleasesShapes(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	g := h.game
	player := g.Player()

	h.scene.DeInit()
	if len(h.scene.Shapes()) != 0 {
		t.Errorf("live shapes after DeInit = %d", len(h.scene.Shapes()))
	}
	if !player.IsDisposed() {
		t.Error("player should be disposed")
	}
	if g.Invaders() != nil || g.Barriers() != nil {
		t.Error("DeInit should drop entity slices")
	}

	// A second round starts clean.
	g.Init(h.tick)
	h.step(16)
	if g.ActiveInvaders() != 50 || g.Score() != 0 || g.Lives() != 3 {
		t.Errorf("restart: invaders=%d score=%d lives=%d", g.ActiveInvaders(), g.Score(), g.Lives())
	}
}

func TestInitRestartsRunningRound(t *testing.T) {
	h := newHarness(t, DefaultConfig(), quietRNG())
	old := h.game.Player()
	h.game.Init(h.tick)
	if !old.IsDisposed() {
		t.Error("restart should dispose the previous round's shapes")
	}
	h.step(16)
	n := 0
	for _, s := range h.scene.Shapes() {
		if s.Name == "player" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("players in scene = %d, want 1", n)
	}
}

func TestNewPanicsOnNilScene(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic")
		}
	}()
	New(DefaultConfig(), nil, nil, nil)
}
