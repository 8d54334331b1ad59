// Command armdemo drives an arm with the mouse in the terminal.
//
// Move the mouse to set the target, press g to grab or drop the ball and
// q or Esc to quit.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/setanarut/arm"
	"github.com/setanarut/vec"
	"go.uber.org/zap"
)

const sparkLife = 300 * time.Millisecond

type flash struct {
	spark arm.Spark
	until time.Time
}

type demo struct {
	screen    tcell.Screen
	cfg       *arm.Config
	logger    *zap.Logger
	arm       *arm.Arm
	pointer   *arm.PointerController
	colliders []*arm.Collider
	styles    map[int]arm.BoneStyle
	ball      *arm.Ball
	drawer    *cellDrawer
	flashes   []flash
	contact   *arm.Contact
}

func newDemo(cfg *arm.Config, logger *zap.Logger, screen tcell.Screen) (*demo, error) {
	chain, err := cfg.BuildChain()
	if err != nil {
		return nil, err
	}
	colliders, err := cfg.BuildColliders()
	if err != nil {
		return nil, err
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	d := &demo{
		screen:    screen,
		cfg:       cfg,
		logger:    logger,
		pointer:   &arm.PointerController{},
		colliders: colliders,
		styles:    cfg.Styles(),
		drawer:    &cellDrawer{screen: screen, flags: arm.DrawBones | arm.DrawColliders | arm.DrawContacts},
	}
	if cfg.Arm.HoldRadius > 0 {
		d.ball = &arm.Ball{R: cfg.Arm.HoldRadius}
	}
	d.arm = arm.NewArm(chain,
		arm.WithController(d.pointer),
		arm.WithSolver(cfg.BuildSolver(arm.WithSolverLogger(logger))),
		arm.WithLogger(logger),
		arm.WithSparkHandler(func(_ *arm.Arm, sp arm.Spark) {
			d.flashes = append(d.flashes, flash{spark: sp, until: time.Now().Add(sparkLife)})
		}),
	)
	d.resize()
	return d, nil
}

func (d *demo) resize() {
	w, h := d.screen.Size()
	d.drawer.view = newView(d.cfg.Arm.Root.Vec(), d.arm.Chain.Reach()*1.3, w, h)
	d.screen.Sync()
}

func (d *demo) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'g':
				d.toggleGrab()
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		cell := vec.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
		d.pointer.MoveTo(d.drawer.view.Inverse().Apply(cell))
	case *tcell.EventResize:
		d.resize()
	}
	return true
}

func (d *demo) toggleGrab() {
	if d.ball == nil {
		return
	}
	if d.arm.Held() != nil {
		d.arm.Release()
		return
	}
	d.arm.Grab(&arm.ReachClamp{
		Holdable: d.ball,
		Anchor:   d.cfg.Arm.Root.Vec(),
		Reach:    d.arm.Chain.Reach(),
	})
}

func (d *demo) tick(dt float64) {
	result := d.arm.Tick(d.colliders, dt)
	if result.FirstCollision != nil {
		d.contact = result.FirstCollision
	}

	now := time.Now()
	live := d.flashes[:0]
	for _, f := range d.flashes {
		if now.Before(f.until) {
			live = append(live, f)
		}
	}
	d.flashes = live
}

func (d *demo) draw() {
	d.screen.Clear()
	arm.DrawScene(d.arm.Chain, d.styles, d.colliders, d.drawer)
	if d.contact != nil {
		arm.DrawContact(&d.contact.Collision, d.drawer)
	}
	if d.ball != nil {
		d.drawer.DrawCircle(d.ball.Position, 0, d.ball.R, arm.FColor{}, arm.FColor{R: 1, G: 1, B: 0.3, A: 1}, nil)
	}
	spark := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for _, f := range d.flashes {
		d.drawer.plot(f.spark.Point, '*', spark)
	}
	d.screen.Show()
}

func (d *demo) run() {
	ticker := time.NewTicker(d.cfg.Tick)
	defer ticker.Stop()

	// ChannelEvents closes events once quit is closed or the screen is
	// finalized.
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go d.screen.ChannelEvents(events, quit)

	dt := d.cfg.Tick.Seconds()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !d.handle(ev) {
				return
			}
		case <-ticker.C:
			d.tick(dt)
			d.draw()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	logPath := flag.String("log", "", "log file, overrides the config")
	flag.Parse()

	cfg := arm.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = arm.LoadConfigFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "armdemo: %v\n", err)
			os.Exit(1)
		}
	}
	if *logPath != "" {
		cfg.Log.Path = *logPath
	}

	logger, err := arm.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "armdemo: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "armdemo: %v\n", err)
		os.Exit(1)
	}
	d, err := newDemo(cfg, logger, screen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "armdemo: %v\n", err)
		os.Exit(1)
	}
	defer d.screen.Fini()

	logger.Info("demo started",
		zap.Stringer("arm", d.arm.ID),
		zap.Int("segments", d.arm.Chain.Len()),
		zap.Int("colliders", len(d.colliders)))
	d.run()
}
