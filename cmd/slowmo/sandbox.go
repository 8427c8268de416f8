package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/lixenwraith/slowmo/core"
	"github.com/lixenwraith/slowmo/parameter"
	"github.com/lixenwraith/slowmo/vmath"
	"github.com/lixenwraith/slowmo/zone"
)

const (
	hudRows     = 4
	rateBarSize = 30
)

var (
	styleBg     = tcell.StyleDefault.Background(tcell.NewRGBColor(26, 27, 38))
	styleBall   = styleBg.Foreground(tcell.NewRGBColor(255, 160, 50)).Bold(true)
	styleHoop   = styleBg.Foreground(tcell.NewRGBColor(0, 255, 255))
	styleFloor  = styleBg.Foreground(tcell.NewRGBColor(100, 100, 110))
	styleHUD    = styleBg.Foreground(tcell.NewRGBColor(200, 200, 200))
	styleSlow   = styleBg.Foreground(tcell.NewRGBColor(255, 0, 255))
	styleNormal = styleBg.Foreground(tcell.NewRGBColor(0, 255, 0))
)

// activeScreen is finalized by the panic handler in main
var activeScreen tcell.Screen

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Interactive terminal scene: launch a ball through the hoop",
	Long:  "Keys: space launch, k kick, t toggle controller, p pause physics, q or Esc quit.",
	RunE:  runSandbox,
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
}

func runSandbox(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if logFile := setupLogging(s.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	activeScreen = screen
	defer screen.Fini()
	screen.SetStyle(styleBg)
	screen.HideCursor()

	w, h := screen.Size()
	sc, err := newScene(s, float64(w), float64(max(h-hudRows, 1)), s.Audio.Enabled)
	if err != nil {
		return err
	}
	atexit.Register(func() { sc.Close() })
	defer sc.Close()

	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	return sandboxLoop(screen, sc, events)
}

func sandboxLoop(screen tcell.Screen, sc *scene, events <-chan tcell.Event) error {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	clk := sc.loop.Clock()
	clk.Tick()
	for {
		select {
		case ev := <-events:
			if !handleKey(sc, ev) {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}

		case <-ticker.C:
			sc.loop.Frame(clk.Tick())
			drawScene(screen, sc)
			screen.Show()
		}
	}
}

// handleKey applies one input event, returns false to quit
func handleKey(sc *scene, ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch key.Rune() {
		case ' ':
			sc.Launch()
		case 'k':
			sc.Kick()
		case 't':
			sc.Toggle()
		case 'p':
			if clk := sc.loop.Clock(); clk.IsPaused() {
				clk.Resume()
			} else {
				clk.Pause()
			}
		case 'q':
			return false
		}
	}
	return true
}

// drawScene renders world rows above the HUD; world Y grows upward
func drawScene(screen tcell.Screen, sc *scene) {
	screen.Clear()
	w, h := screen.Size()
	sceneRows := max(h-hudRows, 1)

	toCell := func(p vmath.Vec3F) (int, int) {
		return int(math.Floor(p.X)), sceneRows - 1 - int(math.Floor(p.Y))
	}

	// Hoop outline
	if sphere, ok := sc.hoop.Shape().(zone.Sphere); ok {
		c, r := sphere.Center, sphere.Radius
		for i := 0; i < 48; i++ {
			a := 2 * math.Pi * float64(i) / 48
			x, y := toCell(vmath.Vec3F{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
			putRune(screen, w, sceneRows, x, y, '·', styleHoop)
		}
	}

	for x := 0; x < w; x++ {
		putRune(screen, w, h, x, sceneRows, '─', styleFloor)
	}

	bx, by := toCell(sc.ball.Interpolated(sc.loop.Stepper().Alpha()))
	putRune(screen, w, sceneRows, bx, by, '●', styleBall)

	for i, line := range hudLines(sc) {
		style := styleHUD
		if i == 0 {
			style = rateStyle(sc.ctl.Register().Rate())
		}
		putString(screen, w, h, 1, sceneRows+1+i, line, style)
	}
}

// hudLines formats the controller and metrics readout
func hudLines(sc *scene) []string {
	snap := sc.ctl.Snapshot()

	filled := int(math.Round(snap.Rate * rateBarSize))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", rateBarSize-filled)

	active := "on"
	if !snap.Active {
		active = "off"
	}
	paused := ""
	if sc.loop.Clock().IsPaused() {
		paused = "  [PAUSED]"
	}

	lines := []string{
		fmt.Sprintf("rate %s %.3f  step %v%s", bar, snap.Rate, snap.FixedStep, paused),
		fmt.Sprintf("stage %-9s remaining %-8v in_dilation %-5v on_cooldown %-5v controller %s",
			snap.Stage, snap.Remaining.Round(10*time.Millisecond), snap.InDilation, snap.OnCooldown, active),
	}

	var metrics []string
	for _, m := range sc.stats.Snapshot() {
		if strings.HasSuffix(m.Key, ".rate") || strings.HasSuffix(m.Key, ".stage") || strings.HasSuffix(m.Key, ".sequence") {
			continue
		}
		metrics = append(metrics, m.Key+"="+m.Value)
	}
	lines = append(lines, strings.Join(metrics, " "))
	lines = append(lines, "space launch  k kick  t toggle  p pause  q quit")
	return lines
}

func rateStyle(rate float64) tcell.Style {
	if rate < parameter.NeutralRate {
		return styleSlow
	}
	return styleNormal
}

func putRune(screen tcell.Screen, w, h, x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	screen.SetContent(x, y, r, nil, style)
}

func putString(screen tcell.Screen, w, h, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		putRune(screen, w, h, x, y, r, style)
		x++
	}
}
