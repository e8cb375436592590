package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"jdex/internal/config"
	"jdex/internal/javadoc"
	"jdex/internal/library"
	md "jdex/internal/markdown"
	"jdex/internal/rpc"
)

type Server struct {
	lib        *library.Library
	cfg        *config.Config
	socketPath string
	httpServer *http.Server
	listener   net.Listener

	mu         sync.Mutex
	expTimer   *time.Timer
	expiration time.Duration

	reloadGroup singleflight.Group
}

func NewServer(cfg *config.Config, lib *library.Library, socketPath string) *Server {
	expSec := cfg.Daemon.ExpirationSeconds
	if expSec <= 0 {
		expSec = 600
	}

	return &Server{
		lib:        lib,
		cfg:        cfg,
		socketPath: socketPath,
		expiration: time.Duration(expSec) * time.Second,
	}
}

func (s *Server) Start(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0755); err != nil {
		return fmt.Errorf("creating socket directory: %w", err)
	}
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("setting socket permissions: %w", err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("POST /search", s.withExpReset(s.handleSearch))
	mux.HandleFunc("POST /class", s.withExpReset(s.handleClass))
	mux.HandleFunc("GET /libraries", s.withExpReset(s.handleLibraries))
	mux.HandleFunc("POST /reload", s.withExpReset(s.handleReload))
	mux.HandleFunc("POST /shutdown", s.handleShutdown)

	s.httpServer = &http.Server{Handler: mux}

	s.mu.Lock()
	s.expTimer = time.AfterFunc(s.expiration, s.expire)
	s.mu.Unlock()

	log.Printf("daemon: listening on %s (expires after %s of inactivity)", s.socketPath, s.expiration)

	if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	var errs []error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("daemon: shutdown error: %v", err)
			errs = append(errs, err)
		}
	}
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			log.Printf("daemon: listener close error: %v", err)
			errs = append(errs, err)
		}
	}
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		log.Printf("daemon: socket remove error: %v", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Server) expire() {
	log.Printf("daemon: expiring due to inactivity")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Stop(ctx)
	os.Exit(0)
}

func (s *Server) resetExpiration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expTimer != nil {
		s.expTimer.Stop()
		s.expTimer.Reset(s.expiration)
	}
}

func (s *Server) withExpReset(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.resetExpiration()
		handler(w, r)
	}
}

// LoadSources scans the configured archive locations into the library:
// the main directory plus any extras from the config. Sources that
// fail are logged and skipped.
func (s *Server) LoadSources() rpc.ReloadResponse {
	if n, err := s.lib.LoadDirectory(s.cfg.Archives.Dir); err != nil {
		log.Printf("daemon: archive directory %s: %v", s.cfg.Archives.Dir, err)
	} else {
		log.Printf("daemon: loaded %d archives from %s", n, s.cfg.Archives.Dir)
	}

	for _, src := range s.cfg.Archives.Extra {
		fi, err := os.Stat(src.Path)
		switch {
		case err != nil:
			log.Printf("daemon: skipping archive source %s: %v", src.Path, err)
		case fi.IsDir():
			if _, err := s.lib.LoadDirectory(src.Path); err != nil {
				log.Printf("daemon: archive source %s: %v", src.Path, err)
			}
		default:
			if err := s.lib.Add(src.Path); err != nil {
				log.Printf("daemon: archive %s: %v", src.Path, err)
			}
		}
	}

	archives, classes := s.lib.Counts()
	return rpc.ReloadResponse{Archives: archives, Classes: classes}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req rpc.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	writeJSON(w, http.StatusOK, rpc.SearchResponse{Names: s.lib.Search(req.Query)})
}

func (s *Server) handleClass(w http.ResponseWriter, r *http.Request) {
	var req rpc.ClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing name")
		return
	}

	info, err := s.lib.GetClassInfo(req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if info == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("class %s not found", req.Name))
		return
	}

	writeJSON(w, http.StatusOK, s.classResponse(info, req.Frames || s.cfg.URLs.Frames))
}

func (s *Server) classResponse(info *javadoc.ClassInfo, frames bool) rpc.ClassResponse {
	meta := info.Source.Metadata()
	resp := rpc.ClassResponse{
		Name:        info.Name.FullyQualified(),
		Library:     library.DisplayName(info.Source),
		Version:     meta.Version,
		URL:         info.DocumentationURL,
		Modifiers:   info.Modifiers,
		Extends:     info.Extends,
		Since:       info.Since,
		Deprecated:  info.Deprecated,
		Description: s.rewriteDescription(info.Description),
	}
	if frames {
		resp.URL = info.Source.DocumentationURL(info.Name, true)
	}

	for _, m := range info.Methods {
		resp.Methods = append(resp.Methods, rpc.Method{
			Name:        m.Name,
			Modifiers:   m.Modifiers,
			Deprecated:  m.Deprecated,
			Parameters:  m.Parameters,
			Description: s.rewriteDescription(m.Description),
		})
	}
	return resp
}

// rewriteDescription turns markdown links whose destination is a bare
// class name into jdoc resource URIs, so MCP clients can follow them.
func (s *Server) rewriteDescription(text string) string {
	if text == "" {
		return text
	}
	return md.RewriteClassLinks(text, s.resolveLink)
}

// resolveLink maps a link destination to a jdoc URI when it names a
// class the library knows unambiguously. Anything that already looks
// like a URL or a path stays untouched.
func (s *Server) resolveLink(dest string) string {
	if strings.Contains(dest, "://") || strings.ContainsAny(dest, "/#?") {
		return ""
	}
	matches := s.lib.Search(dest)
	if len(matches) != 1 {
		return ""
	}
	info, err := s.lib.GetClassInfo(matches[0])
	if err != nil || info == nil {
		return ""
	}
	return fmt.Sprintf("jdoc://%s/%s", url.PathEscape(library.DisplayName(info.Source)), matches[0])
}

func (s *Server) handleLibraries(w http.ResponseWriter, r *http.Request) {
	var libs []rpc.LibraryStatus
	for _, st := range s.lib.Snapshot() {
		libs = append(libs, rpc.LibraryStatus{
			Name:       st.Name,
			Version:    st.Version,
			ProjectURL: st.ProjectURL,
			Path:       st.Path,
			Classes:    st.Classes,
		})
	}

	writeJSON(w, http.StatusOK, rpc.LibrariesResponse{Libraries: libs})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	// Concurrent reloads collapse into one scan.
	v, _, _ := s.reloadGroup.Do("reload", func() (interface{}, error) {
		return s.LoadSources(), nil
	})

	log.Printf("daemon: reloaded archives")
	writeJSON(w, http.StatusOK, v.(rpc.ReloadResponse))
}

func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "shutting down"})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Stop(ctx)
		os.Exit(0)
	}()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
