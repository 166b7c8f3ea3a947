// Package dbus exposes the cue engine on the session bus so desktop tools
// can trigger cues without linking the engine.
package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/earcon/internal/catalog"
	"github.com/jmylchreest/earcon/internal/cue"
)

const (
	// Interface is the control interface name.
	Interface = "io.github.jmylchreest.Earcon1"
	// Path is the control object path.
	Path = "/io/github/jmylchreest/Earcon"
	// BusName is the bus name the daemon claims.
	BusName = "io.github.jmylchreest.Earcon"
)

// Server exports the cue service on the session bus.
type Server struct {
	service *cue.Service
	logger  *slog.Logger

	mu      sync.Mutex
	conn    *dbus.Conn
	running bool
}

// NewServer creates a server over the given cue service.
func NewServer(service *cue.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{service: service, logger: logger}
}

// Start connects to the session bus, exports the control object and claims
// the bus name.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: Path,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: controlMethods(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	s.running = true
	s.logger.Info("D-Bus control server started", "interface", Interface, "path", Path)
	return nil
}

// Stop releases the bus name.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(BusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// The session bus connection is shared; leave it open.
	}

	s.logger.Info("D-Bus control server stopped")
	return nil
}

func controlMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "PlayCue",
			Args: []introspect.Arg{
				{Name: "cue_id", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "PlayCues",
			Args: []introspect.Arg{
				{Name: "cue_ids", Type: "as", Direction: "in"},
			},
		},
		{
			Name: "PlaySound",
			Args: []introspect.Arg{
				{Name: "sound_id", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "IsEnabled",
			Args: []introspect.Arg{
				{Name: "cue_id", Type: "s", Direction: "in"},
				{Name: "enabled", Type: "b", Direction: "out"},
			},
		},
		{
			Name: "ListCues",
			Args: []introspect.Arg{
				{Name: "cue_ids", Type: "as", Direction: "out"},
			},
		},
	}
}

// PlayCue plays one cue, honoring its enablement.
// D-Bus method: PlayCue(s)
func (s *Server) PlayCue(cueID string) *dbus.Error {
	c, ok := s.service.Catalog().Cue(cueID)
	if !ok {
		return dbus.MakeFailedError(fmt.Errorf("unknown cue %q", cueID))
	}
	s.logger.Debug("PlayCue called", "cue", cueID)
	s.service.PlayCue(context.Background(), c, false)
	return nil
}

// PlayCues plays a batch of cues; unknown ids are skipped.
// D-Bus method: PlayCues(as)
func (s *Server) PlayCues(cueIDs []string) *dbus.Error {
	cues := make([]*catalog.Cue, 0, len(cueIDs))
	for _, id := range cueIDs {
		c, ok := s.service.Catalog().Cue(id)
		if !ok {
			s.logger.Debug("skipping unknown cue", "cue", id)
			continue
		}
		cues = append(cues, c)
	}
	s.logger.Debug("PlayCues called", "requested", len(cueIDs), "known", len(cues))
	s.service.PlayCues(context.Background(), cues)
	return nil
}

// PlaySound plays a sound directly, bypassing cue enablement.
// D-Bus method: PlaySound(s)
func (s *Server) PlaySound(soundID string) *dbus.Error {
	snd, ok := s.service.Catalog().Sound(soundID)
	if !ok {
		return dbus.MakeFailedError(fmt.Errorf("unknown sound %q", soundID))
	}
	s.logger.Debug("PlaySound called", "sound", soundID)
	s.service.PlaySound(context.Background(), snd, false)
	return nil
}

// IsEnabled reports a cue's current enablement.
// D-Bus method: IsEnabled(s) -> b
func (s *Server) IsEnabled(cueID string) (bool, *dbus.Error) {
	c, ok := s.service.Catalog().Cue(cueID)
	if !ok {
		return false, dbus.MakeFailedError(fmt.Errorf("unknown cue %q", cueID))
	}
	return s.service.IsEnabled(c), nil
}

// ListCues returns all registered cue ids.
// D-Bus method: ListCues() -> as
func (s *Server) ListCues() ([]string, *dbus.Error) {
	cues := s.service.Catalog().Cues()
	ids := make([]string, 0, len(cues))
	for _, c := range cues {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
