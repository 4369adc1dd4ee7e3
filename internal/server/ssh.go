package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"

	"happy-arena/internal/bestiary"
	"happy-arena/internal/game"
	"happy-arena/internal/quest"
	"happy-arena/internal/render"
)

// Options configures an SSHServer.
type Options struct {
	Addr    string
	HostKey string // path to a PEM host key

	Hero    game.HeroStats
	Roster  *bestiary.Roster
	Duel    game.DuelOptions // template for every duel; Logger and Notifier are set per session
	Tracker *quest.Tracker   // optional
	Roller  bestiary.Roller  // encounter picks, defaults to math/rand/v2
	Logger  *zap.Logger
}

// SSHServer serves one duel after another to each SSH session.
type SSHServer struct {
	opts   Options
	logger *zap.Logger

	mu     sync.Mutex
	srv    *ssh.Server
	closed bool
}

type globalRoller struct{}

func (globalRoller) IntN(n int) int { return rand.IntN(n) }

// NewSSHServer creates a new SSH server bound to opts.Addr.
func NewSSHServer(opts Options) *SSHServer {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Roller == nil {
		opts.Roller = globalRoller{}
	}
	if opts.Roster == nil {
		opts.Roster = bestiary.Default()
	}
	return &SSHServer{opts: opts, logger: opts.Logger}
}

// ListenAndServe begins listening for SSH connections. It returns nil
// after Shutdown.
func (s *SSHServer) ListenAndServe() error {
	server := &ssh.Server{
		Addr:    s.opts.Addr,
		Handler: s.handleSession,
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.opts.HostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.srv = server
	s.mu.Unlock()

	s.logger.Info("SSH server listening", zap.String("addr", s.opts.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for sessions to end.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	server := s.srv
	s.mu.Unlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}
	logger := s.logger.With(
		zap.String("hero", username),
		zap.String("remote", sess.RemoteAddr().String()),
	)
	logger.Info("player connected")
	defer logger.Info("player disconnected")

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	if s.opts.Tracker != nil {
		if err := s.opts.Tracker.Seed(ctx, username); err != nil {
			logger.Warn("loading kill history failed", zap.Error(err))
		}
	}

	t := &terminal{width: ptyReq.Window.Width, height: ptyReq.Window.Height}
	engine := render.NewEngine(t.size())

	io.WriteString(sess, render.EnterScreen)
	defer io.WriteString(sess, render.LeaveScreen)

	actions := make(chan game.Action, game.InputChanSize)

	// Goroutine: read input
	go func() {
		defer cancel()
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, action := range parseInput(buf[:n]) {
				if action == game.ActionQuit {
					return
				}
				select {
				case actions <- action:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			t.resize(win.Width, win.Height)
		}
	}()

	for ctx.Err() == nil {
		if err := s.runDuel(ctx, sess, username, engine, t, actions, logger); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("duel failed", zap.Error(err))
			}
			return
		}
	}
}

// runDuel plays one encounter to the end of its result screen.
func (s *SSHServer) runDuel(
	ctx context.Context,
	w io.Writer,
	username string,
	engine *render.Engine,
	t *terminal,
	actions <-chan game.Action,
	logger *zap.Logger,
) error {
	hero := game.NewHero(username, s.opts.Hero)
	monster := game.NewMonster(s.opts.Roster.Pick(s.opts.Roller))

	opts := s.opts.Duel
	opts.Logger = logger
	if s.opts.Tracker != nil {
		opts.Notifier = s.opts.Tracker
	}
	duel, err := game.NewDuel(hero, monster, opts)
	if err != nil {
		return fmt.Errorf("start duel: %w", err)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- duel.Run(ctx) }()

	for {
		select {
		case a := <-actions:
			duel.Submit(a)
		case state, ok := <-duel.Updates():
			if !ok {
				return <-runErr
			}
			width, height := t.size()
			out := engine.RenderDuel(render.DuelView{
				Snapshot:  state.Snapshot,
				HeroColor: state.HeroColor,
				Tick:      state.Tick,
				Closing:   state.Closing,
				Hint:      s.questHint(username),
			}, width, height)
			if len(out) > 0 {
				io.WriteString(w, out)
			}
		}
	}
}

// questHint describes the first unfinished objective.
func (s *SSHServer) questHint(hero string) string {
	if s.opts.Tracker == nil {
		return ""
	}
	progress := s.opts.Tracker.Progress(hero)
	for _, p := range progress {
		if !p.Done {
			return fmt.Sprintf("Quest: slay %s %d/%d", p.Monster, p.Kills, p.Count)
		}
	}
	if len(progress) > 0 {
		return "All quests complete!"
	}
	return ""
}

// terminal tracks the session's window size across goroutines.
type terminal struct {
	mu            sync.Mutex
	width, height int
}

func (t *terminal) size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

func (t *terminal) resize(width, height int) {
	t.mu.Lock()
	t.width, t.height = width, height
	t.mu.Unlock()
}

// parseInput converts raw bytes into player actions.
// Handles 1-4, A/D/C/F, Q and Ctrl-C. Arrow key sequences are ignored.
func parseInput(data []byte) []game.Action {
	var actions []game.Action
	i := 0
	for i < len(data) {
		// Skip escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			i += 3
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case '1', 'a', 'A':
			actions = append(actions, game.ActionAttack)
		case '2', 'd', 'D':
			actions = append(actions, game.ActionDefend)
		case '3', 'c', 'C':
			actions = append(actions, game.ActionCast)
		case '4', 'f', 'F':
			actions = append(actions, game.ActionFlee)
		case 'q', 'Q':
			actions = append(actions, game.ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, game.ActionQuit)
		}
		i += size
	}
	return actions
}
