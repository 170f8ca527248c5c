package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/dtwm/dtwm/internal/config"
	"github.com/dtwm/dtwm/internal/rules"
	"github.com/dtwm/dtwm/internal/state"
	"github.com/dtwm/dtwm/internal/util"
)

// WM is the application context: the X connection, the monitor and
// client model, and everything the handlers and commands mutate. All
// fields are owned by the dispatch goroutine; other goroutines reach
// it only through the proactive channel.
type WM struct {
	conn *xgb.Conn
	xu   *xgbutil.XUtil
	root xp.Window

	screenW, screenH int

	log     *util.Logger
	cfg     *config.Config
	cfgPath string
	rules   []rules.Rule

	mons []*state.Monitor
	sel  *state.Monitor
	// motionMon remembers the monitor under the pointer between
	// motion-notify events so monitor focus switches exactly once.
	motionMon *state.Monitor

	atoms atoms

	checkWin xp.Window

	cursorNormal xp.Cursor
	cursorMove   xp.Cursor
	cursorResize xp.Cursor

	keys     map[keyChord]boundKey
	buttons  []boundButton
	commands map[string]Command
	// parseChord maps a chord string to modifiers and keycodes. It
	// needs the server's keyboard mapping, which is why bad chords
	// can only be detected at bind time, not config-validate time.
	parseChord func(chord string) (uint16, []xp.Keycode, error)

	drag *drag

	status string

	running   bool
	eventTime xp.Timestamp

	// proactive carries work that happens of the manager's own accord
	// (config reloads, startup-hook completion) from other goroutines
	// into the dispatch goroutine.
	proactive chan func()
	pending   []checker
}

type xEventOrError struct {
	event xgb.Event
	err   xgb.Error
}

// New connects to the X display and prepares an unstarted manager.
// Setup must be called before Run.
func New(cfg *config.Config, cfgPath string, logger *util.Logger) (*WM, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("cannot open display: %w", err)
	}
	xu, err := xgbutil.NewConnXgb(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot wrap display connection: %w", err)
	}
	if err := xinerama.Init(conn); err != nil {
		logger.Warnf("xinerama unavailable, assuming one monitor: %v", err)
	}
	setup := xp.Setup(conn)
	if len(setup.Roots) != 1 {
		conn.Close()
		return nil, fmt.Errorf("unsupported number of X screens: %d", len(setup.Roots))
	}
	screen := setup.Roots[0]
	parse := func(chord string) (uint16, []xp.Keycode, error) {
		return keybind.ParseString(xu, chord)
	}
	return &WM{
		conn:       conn,
		xu:         xu,
		root:       screen.Root,
		screenW:    int(screen.WidthInPixels),
		screenH:    int(screen.HeightInPixels),
		log:        logger,
		cfg:        cfg,
		cfgPath:    cfgPath,
		rules:      rules.Compile(cfg),
		keys:       map[keyChord]boundKey{},
		commands:   builtinCommands(),
		parseChord: parse,
		proactive:  make(chan func()),
	}, nil
}

// Run pumps X events through the dispatch loop until a quit command or
// a fatal X error flips the running flag. Exactly one handler executes
// at a time.
func (wm *WM) Run() error {
	events := make(chan xEventOrError)
	go func() {
		for {
			e, err := wm.conn.WaitForEvent()
			if e == nil && err == nil {
				close(events)
				return
			}
			events <- xEventOrError{e, err}
		}
	}()

	wm.running = true
	for wm.running {
		wm.drainChecks()
		select {
		case f := <-wm.proactive:
			f()
		case ee, ok := <-events:
			if !ok {
				return fmt.Errorf("X connection closed")
			}
			if ee.err != nil {
				wm.xError(ee.err)
				continue
			}
			wm.dispatch(ee.event)
		}
	}
	wm.drainChecks()
	return nil
}

func (wm *WM) dispatch(event xgb.Event) {
	switch e := event.(type) {
	case xp.ButtonPressEvent:
		wm.eventTime = e.Time
		wm.handleButtonPress(e)
	case xp.ButtonReleaseEvent:
		wm.eventTime = e.Time
		wm.handleButtonRelease(e)
	case xp.ClientMessageEvent:
		wm.handleClientMessage(e)
	case xp.ConfigureNotifyEvent:
		wm.handleConfigureNotify(e)
	case xp.ConfigureRequestEvent:
		wm.handleConfigureRequest(e)
	case xp.DestroyNotifyEvent:
		wm.handleDestroyNotify(e)
	case xp.EnterNotifyEvent:
		wm.eventTime = e.Time
		wm.handleEnterNotify(e)
	case xp.ExposeEvent:
		// Drawing is out of scope; nothing to repaint.
	case xp.FocusInEvent:
		wm.handleFocusIn(e)
	case xp.KeyPressEvent:
		wm.eventTime = e.Time
		wm.handleKeyPress(e)
	case xp.KeyReleaseEvent:
		wm.eventTime = e.Time
	case xp.MapNotifyEvent:
		// No-op.
	case xp.MappingNotifyEvent:
		wm.handleMappingNotify(e)
	case xp.MapRequestEvent:
		wm.handleMapRequest(e)
	case xp.MotionNotifyEvent:
		wm.eventTime = e.Time
		wm.handleMotionNotify(e)
	case xp.PropertyNotifyEvent:
		wm.eventTime = e.Time
		wm.handlePropertyNotify(e)
	case xp.UnmapNotifyEvent:
		wm.handleUnmapNotify(e)
	default:
		wm.log.Debugf("ignoring event %v", event)
	}
}

// Status returns the most recently read root-window status text.
func (wm *WM) Status() string { return wm.status }

// Selected returns the selected monitor.
func (wm *WM) Selected() *state.Monitor { return wm.sel }

func (wm *WM) findClient(win xp.Window) *state.Client {
	for _, m := range wm.mons {
		for _, c := range m.Clients {
			if c.Win == win {
				return c
			}
		}
	}
	return nil
}

func (wm *WM) isOwnWindow(win xp.Window) bool {
	if win == wm.root || win == wm.checkWin {
		return true
	}
	for _, m := range wm.mons {
		if win == m.BarWin {
			return true
		}
	}
	return false
}
