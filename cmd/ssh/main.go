package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/mtoman/dodger/internal/config"
	"github.com/mtoman/dodger/internal/draw"
	"github.com/mtoman/dodger/internal/logging"
	"github.com/mtoman/dodger/internal/loop"
	"github.com/mtoman/dodger/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultDBPath      = "/app/data/dodger.db"
	defaultLogPath     = "/app/data/dodger-ssh.log"

	// guestUser skips account auth; guest scores are not persisted.
	guestUser = "guest"
)

// authKey carries the verified account from the auth callback to the
// session middleware via the connection context.
type authKey struct{}

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dbPath := config.GetEnv("DODGER_DB", defaultDBPath)
	logPath := config.GetEnv("DODGER_LOG", defaultLogPath)

	logger := logging.New(logPath)
	defer logger.Sync()

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		// The SSH username and password double as the game account. New
		// players connect as guest and sign up in-game on another day; the
		// signup screen is not reachable over SSH since auth happens first.
		wish.WithPasswordAuth(func(ctx ssh.Context, password string) bool {
			if ctx.User() == guestUser {
				return true
			}
			u, err := db.VerifyUser(ctx.User(), password)
			if err != nil {
				if !errors.Is(err, store.ErrBadCredentials) {
					logger.Errorw("auth lookup failed", "user", ctx.User(), "error", err)
				}
				return false
			}
			ctx.SetValue(authKey{}, u)
			return true
		}),
		wish.WithMiddleware(
			gameMiddleware(db, logger),
			activeterm.Middleware(),
			wishlogging.Middleware(),
		),
		// TCP_NODELAY keeps frame latency down for interactive play.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting SSH server on %s:%s", host, port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

// gameMiddleware runs one game session per SSH connection.
func gameMiddleware(db *store.Store, logger *zap.SugaredLogger) func(next ssh.Handler) ssh.Handler {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			log.Printf("New game session: user=%s, terminal=%s, size=%dx%d",
				sess.User(), pty.Term, pty.Window.Width, pty.Window.Height)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			gs := &loop.Session{
				Store:     db,
				Settings:  config.DefaultSettings(),
				Log:       logger,
				Username:  sess.User(),
				PreAuthed: true,
			}
			if u, ok := sess.Context().Value(authKey{}).(store.User); ok {
				gs.UserID = u.ID
				gs.Settings.SelectedCar = u.SelectedCar
			}

			reader := bufio.NewReader(sess)
			if err := loop.Run(sess.Context(), gs, reader, sess, sizeTracker.getSize); err != nil {
				log.Printf("Game error for %s: %v", sess.User(), err)
			}

			log.Printf("Session ended: user=%s", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
