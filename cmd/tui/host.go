// Package tui hosts a terminal in a full-screen gocui view.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/awesome-gocui/gocui"

	"github.com/Lesliedc339/linux-terminal/internal/di"
	"github.com/Lesliedc339/linux-terminal/pkg/config"
	"github.com/Lesliedc339/linux-terminal/pkg/logging"
	"github.com/Lesliedc339/linux-terminal/pkg/terminal"
)

const (
	viewName     = "terminal"
	closeTimeout = 3 * time.Second
)

// ViewSurface feeds writes into a Screen and asks for a repaint after each one.
type ViewSurface struct {
	screen  *Screen
	changed func()
}

func NewViewSurface(screen *Screen, changed func()) *ViewSurface {
	if changed == nil {
		changed = func() {}
	}
	return &ViewSurface{screen: screen, changed: changed}
}

func (s *ViewSurface) Write(text string) {
	s.screen.Write(text)
	s.changed()
}

func (s *ViewSurface) Writeln(text string) {
	s.screen.Write(text + "\r\n")
	s.changed()
}

// App is the gocui application: one frameless view showing the screen.
type App struct {
	gui      *gocui.Gui
	screen   *Screen
	terminal *terminal.Terminal
	logger   logging.Logger
}

// New creates the gui and the terminal behind it. outputMode lets tests pick
// gocui.OutputSimulator.
func New(cfg *config.Config, opts di.HostOptions, logger logging.Logger, outputMode gocui.OutputMode) (*App, error) {
	g, err := gocui.NewGui(outputMode, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create gui: %w", err)
	}

	app := &App{
		gui:    g,
		screen: NewScreen(DefaultScrollback),
		logger: logger.With("component", "tui"),
	}

	term, err := di.InitializeTerminal(NewViewSurface(app.screen, app.refresh), cfg, opts, logger)
	if err != nil {
		g.Close()
		return nil, err
	}
	app.terminal = term

	g.Cursor = true
	g.SetManagerFunc(app.layout)
	if err := app.setupKeybindings(); err != nil {
		g.Close()
		return nil, err
	}
	return app, nil
}

// Run shows the welcome message and blocks until the user quits.
func (app *App) Run() error {
	defer app.gui.Close()

	app.terminal.Start()
	err := app.gui.MainLoop()
	if errors.Is(err, gocui.ErrQuit) {
		err = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if closeErr := app.terminal.Close(ctx); closeErr != nil {
		app.logger.Warn("terminal did not shut down cleanly", "error", closeErr)
	}
	return err
}

func (app *App) Terminal() *terminal.Terminal {
	return app.terminal
}

func (app *App) Screen() *Screen {
	return app.screen
}

func (app *App) GetGui() *gocui.Gui {
	return app.gui
}

// Edit implements gocui.Editor by handing every key to the terminal.
func (app *App) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	app.terminal.HandleKey(TranslateKey(key, ch, mod))
}

func (app *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	v, err := g.SetView(viewName, 0, 0, maxX-1, maxY-1, 0)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Frame = false
		v.Wrap = false
		v.Editable = true
		v.Editor = app
		if _, err := g.SetCurrentView(viewName); err != nil {
			return err
		}
	}
	return app.render(v)
}

// render repaints the view from the screen and keeps the cursor line visible.
func (app *App) render(v *gocui.View) error {
	v.Clear()
	fmt.Fprint(v, app.screen.String())

	row, col := app.screen.Cursor()
	_, height := v.Size()
	originY := 0
	if height > 0 && row >= height {
		originY = row - height + 1
	}
	if err := v.SetOrigin(0, originY); err != nil {
		return err
	}
	return v.SetCursor(col, row-originY)
}

func (app *App) refresh() {
	app.gui.Update(func(g *gocui.Gui) error {
		v, err := g.View(viewName)
		if err != nil {
			return nil
		}
		return app.render(v)
	})
}

func (app *App) setupKeybindings() error {
	quit := func(g *gocui.Gui, v *gocui.View) error {
		return gocui.ErrQuit
	}
	for _, key := range []gocui.Key{gocui.KeyCtrlC, gocui.KeyCtrlD} {
		if err := app.gui.SetKeybinding("", key, gocui.ModNone, quit); err != nil {
			return err
		}
	}
	return nil
}
