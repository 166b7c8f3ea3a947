// Package accessibility observes screen-reader attachment via the session
// bus. The a11y bus publishes org.a11y.Status.ScreenReaderEnabled and emits
// PropertiesChanged when an assistive tool attaches or detaches.
package accessibility

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/earcon/internal/observable"
)

const (
	a11yBusName      = "org.a11y.Bus"
	a11yObjectPath   = dbus.ObjectPath("/org/a11y/bus")
	statusInterface  = "org.a11y.Status"
	screenReaderProp = "ScreenReaderEnabled"
	propsInterface   = "org.freedesktop.DBus.Properties"
)

// Monitor tracks live screen-reader attachment. Before Start, and on systems
// without an a11y bus, Attached reports false.
type Monitor struct {
	mu     sync.RWMutex
	conn   *dbus.Conn
	logger *slog.Logger

	attached bool
	running  bool
	done     chan struct{}

	changed observable.Emitter[struct{}]
}

// NewMonitor creates an accessibility monitor.
func NewMonitor(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start connects to the session bus, reads the current screen-reader state
// and subscribes to changes.
func (m *Monitor) Start() error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	m.done = make(chan struct{})
	m.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	m.conn = conn

	// Current value query; degraded desktops without the a11y service
	// simply report "no screen reader".
	obj := conn.Object(a11yBusName, a11yObjectPath)
	variant, err := obj.GetProperty(statusInterface + "." + screenReaderProp)
	if err != nil {
		m.logger.Warn("a11y status unavailable, assuming no screen reader", "error", err)
	} else if enabled, ok := variant.Value().(bool); ok {
		m.setAttached(enabled)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchObjectPath(a11yObjectPath),
	)
	if err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}

	ch := make(chan *dbus.Signal, 16)
	conn.Signal(ch)
	go m.processSignals(ch)

	m.logger.Info("accessibility monitor started", "screen_reader", m.Attached())
	return nil
}

// processSignals handles PropertiesChanged signals from the a11y bus.
func (m *Monitor) processSignals(ch chan *dbus.Signal) {
	for {
		select {
		case sig, ok := <-ch:
			if !ok {
				return
			}
			if sig.Name != propsInterface+".PropertiesChanged" {
				continue
			}
			m.handlePropertiesChanged(sig)
		case <-m.done:
			return
		}
	}
}

// handlePropertiesChanged parses a PropertiesChanged body:
// (interface, changed properties, invalidated property names).
func (m *Monitor) handlePropertiesChanged(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != statusInterface {
		return
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}
	variant, ok := changed[screenReaderProp]
	if !ok {
		return
	}
	enabled, ok := variant.Value().(bool)
	if !ok {
		return
	}

	m.logger.Debug("screen reader state changed", "attached", enabled)
	m.setAttached(enabled)
}

func (m *Monitor) setAttached(attached bool) {
	m.mu.Lock()
	if m.attached == attached {
		m.mu.Unlock()
		return
	}
	m.attached = attached
	m.mu.Unlock()

	m.changed.Fire(struct{}{})
}

// Attached reports whether a screen reader is currently attached.
func (m *Monitor) Attached() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attached
}

// OnDidChange subscribes fn to attachment changes for the monitor's lifetime.
func (m *Monitor) OnDidChange(fn func()) {
	m.changed.Subscribe(func(struct{}) { fn() })
}

// Stop stops the monitor.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.running = false
	close(m.done)
	// The session bus connection is shared; leave it open.
}
