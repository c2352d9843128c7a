package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/beveragebuddy/internal/platform/timeouts"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/catalog"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/jsdialog"
	"github.com/louisbranch/beveragebuddy/internal/services/admin/loadsim"
	adminsqlite "github.com/louisbranch/beveragebuddy/internal/services/admin/storage/sqlite"
)

// Config defines the inputs for the admin process.
type Config struct {
	HTTPAddr string
	DBPath   string
	// LoadSteps and LoadStepDelay shape the pushed load sequence.
	LoadSteps     int
	LoadStepDelay time.Duration
	// SeedDemo fills an empty catalog with demo data at startup.
	SeedDemo     bool
	Dependencies jsdialog.Dependencies
}

// Server hosts the admin HTTP surface and owns its catalog store.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	handler    *Handler
	adminStore *adminsqlite.Store
	// stopPush cancels the base context of every request, which ends
	// attached push sessions that Shutdown does not track.
	stopPush context.CancelFunc
}

// NewServer builds a configured admin server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	adminStore, err := OpenStore(config.DBPath)
	if err != nil {
		return nil, err
	}
	adminCatalog, err := catalog.New(adminStore)
	if err != nil {
		_ = adminStore.Close()
		return nil, err
	}
	if config.SeedDemo {
		seeded, err := adminCatalog.SeedDemo(ctx, time.Now().UTC())
		if err != nil {
			_ = adminStore.Close()
			return nil, fmt.Errorf("seed demo catalog: %w", err)
		}
		if seeded {
			log.Printf("admin seeded demo catalog")
		}
	}

	handler, err := newHandler(HandlerConfig{
		Catalog: adminCatalog,
		LoadSequence: loadsim.Sequence{
			Steps: config.LoadSteps,
			Delay: config.LoadStepDelay,
		},
		Dependencies:     config.Dependencies,
		PushWriteTimeout: timeouts.PushWrite,
	})
	if err != nil {
		_ = adminStore.Close()
		return nil, err
	}
	baseCtx, stopPush := context.WithCancel(context.Background())
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler.routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		handler:    handler,
		adminStore: adminStore,
		stopPush:   stopPush,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("admin listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		err := s.httpServer.Shutdown(shutdownCtx)
		if stopErr := s.stopSessions(shutdownCtx); stopErr != nil {
			log.Printf("admin: stop push sessions: %v", stopErr)
		}
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// stopSessions ends attached push sessions and waits for their load
// sequences to return.
func (s *Server) stopSessions(ctx context.Context) error {
	if s.stopPush != nil {
		s.stopPush()
	}
	if s.handler == nil {
		return nil
	}
	return s.handler.sessions.Wait(ctx)
}

// Close stops push sessions and releases the catalog store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.stopSessions(stopCtx); err != nil {
		log.Printf("admin: stop push sessions: %v", err)
	}
	if s.adminStore != nil {
		if err := s.adminStore.Close(); err != nil {
			log.Printf("close admin store: %v", err)
		}
	}
}

// OpenStore opens the catalog database at path, creating its directory.
// An empty path uses data/admin.db.
func OpenStore(path string) (*adminsqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "admin.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := adminsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open admin sqlite store: %w", err)
	}
	return store, nil
}
