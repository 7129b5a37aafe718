package aframe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// SourceViewPath serves a syntax-highlighted view of the rendered
// scene markup.
const SourceViewPath = "/_source"

// shutdownTimeout bounds graceful shutdown on Stop.
const shutdownTimeout = 5 * time.Second

// Serve starts an HTTP server bound to host:port that responds to the
// root path with the freshly rendered document and to any other path
// with the local file at that relative path, restricted to the
// working directory. Serve returns once the listener is bound; the
// accept loop runs in the background until Stop.
//
// One active server per Scene: calling Serve again without Stop
// returns ErrAlreadyServing.
func (s *Scene) Serve(host string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return ErrAlreadyServing
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return err
	}
	s.rootDir = rootDir

	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.handler()}
	s.srv = srv
	s.addr = ln.Addr().String()
	s.logger.Info("scene server listening", "addr", s.addr, "root", rootDir)

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("scene server stopped", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down and frees the bound address.
// Calling Stop when not serving is a no-op.
func (s *Scene) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	s.srv = nil
	s.addr = ""
	s.logger.Info("scene server stopped")
	return err
}

// Addr returns the bound address while serving, or the empty string.
func (s *Scene) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// handler builds the request mux: document at the root, source view,
// local files everywhere else.
func (s *Scene) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(SourceViewPath, s.handleSource)
	mux.HandleFunc("/", s.handleRoot)
	return mux
}

// handleRoot serves the rendered document at "/" and delegates every
// other path to the local file handler.
func (s *Scene) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.handleFile(w, r)
		return
	}

	doc, err := s.Render()
	if err != nil {
		s.logger.Error("render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
	s.logger.Debug("served document", "remote_addr", r.RemoteAddr)
}

// handleSource serves the highlighted markup view.
func (s *Scene) handleSource(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Render()
	if err != nil {
		s.logger.Error("render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := writeHighlightedSource(w, doc); err != nil {
		s.logger.Error("source highlight failed", "error", err)
	}
}

// handleFile serves a locally-referenced asset file by its relative
// path. Paths resolving outside the working directory are rejected.
func (s *Scene) handleFile(w http.ResponseWriter, r *http.Request) {
	resolved, ok := s.resolveLocalPath(r.URL.Path)
	if !ok {
		s.logger.Warn("refused path outside working directory", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	s.logger.Debug("served file", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
	http.ServeFile(w, r, resolved)
}

// resolveLocalPath maps a request path to an absolute file path at or
// below the serving root. Returns false when the path, after symlink
// resolution, escapes the root.
func (s *Scene) resolveLocalPath(requestPath string) (string, bool) {
	cleaned := filepath.Clean("/" + requestPath)
	resolved := filepath.Join(s.rootDir, cleaned)

	real, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing files answer 404, not 403.
			return resolved, true
		}
		return "", false
	}

	realRoot, err := filepath.EvalSymlinks(s.rootDir)
	if err != nil {
		return "", false
	}

	if real != realRoot && !strings.HasPrefix(real, realRoot+string(os.PathSeparator)) {
		return "", false
	}
	return real, true
}
