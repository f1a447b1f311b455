package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/t-kuester/sokoban/internal/config"
	"github.com/t-kuester/sokoban/internal/levels"
	"github.com/t-kuester/sokoban/internal/storage"
)

// SSHServer serves the game over SSH via Wish. Every session gets the same
// browser/play flow as the local TUI; progress is shared through one store.
type SSHServer struct {
	cfg         config.Config
	collections []levels.Collection
	server      *ssh.Server
	store       *storage.Store
	logger      *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg config.Config) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban-ssh",
	})

	colls, err := levels.NewLoader(cfg.Levels.Dir).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading level collections: %w", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open progress database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		cfg:         cfg,
		collections: colls,
		store:       store,
		logger:      logger,
	}

	hostKeyPath := cfg.SSH.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sokoban", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf("%s:%d", cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(30*time.Minute),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.collections, s.store, s.cfg, pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "host", s.cfg.SSH.Host, "port", s.cfg.SSH.Port)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// SessionModel manages the full session flow: browser -> play -> browser.
// It is the top-level model for both SSH sessions and the local TUI.
type SessionModel struct {
	collections []levels.Collection
	store       *storage.Store
	cfg         config.Config
	browser     BrowserModel
	play        *PlayModel
	inPlay      bool
	width       int
	height      int
	quitting    bool
}

// NewSessionModel creates a session starting at the browser.
func NewSessionModel(colls []levels.Collection, store *storage.Store, cfg config.Config, width, height int) SessionModel {
	return SessionModel{
		collections: colls,
		store:       store,
		cfg:         cfg,
		browser:     NewBrowserModel(colls, store, width, height),
		width:       width,
		height:      height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.browser.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	if m.inPlay && m.play != nil {
		return m.updatePlay(msg)
	}
	return m.updateBrowser(msg)
}

// updateBrowser handles updates while the browser is active.
func (m SessionModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBrowser, cmd := m.browser.Update(msg)
	if b, ok := newBrowser.(BrowserModel); ok {
		m.browser = b
	}

	if m.browser.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if coll, index, ok := m.browser.Selection(); ok {
		play := NewPlayModel(coll, index, m.store, m.cfg, m.width, m.height)
		m.play = &play
		m.inPlay = true
		return m, m.play.Init()
	}

	return m, cmd
}

// updatePlay handles updates while a level is being played.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPlay, cmd := m.play.Update(msg)
	if p, ok := newPlay.(PlayModel); ok {
		m.play = &p
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.IsGoingBack() {
		m.inPlay = false
		m.play = nil
		m.browser = NewBrowserModel(m.collections, m.store, m.width, m.height)
		return m, m.browser.Init()
	}

	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inPlay && m.play != nil {
		return m.play.View()
	}
	return m.browser.View()
}

// RunSession runs the full browser/play flow in the local terminal.
func RunSession(colls []levels.Collection, store *storage.Store, cfg config.Config, width, height int) error {
	model := NewSessionModel(colls, store, cfg, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
