package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/lxzan/gws"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/soar/padoverlay/internal/hub"
)

// asset is a frontend file held in memory, minified when its type allows.
type asset struct {
	contentType string
	data        []byte
}

type Server struct {
	hub        *hub.Hub
	assets     map[string]asset
	upgrader   *gws.Upgrader
	addr       string
	started    time.Time
	httpServer *http.Server
}

// New prepares a server for the overlay frontend in frontendFS. Every
// asset is read and minified up front.
func New(h *hub.Hub, frontendFS fs.FS, addr string) (*Server, error) {
	assets, err := loadAssets(frontendFS)
	if err != nil {
		return nil, err
	}
	if _, ok := assets["index.html"]; !ok {
		return nil, fmt.Errorf("frontend has no index.html")
	}
	return &Server{
		hub:    h,
		assets: assets,
		upgrader: gws.NewUpgrader(hub.NewHandler(h), &gws.ServerOption{
			Recovery:          gws.Recovery,
			PermessageDeflate: gws.PermessageDeflate{Enabled: true},
		}),
		addr:    addr,
		started: time.Now(),
	}, nil
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}

func loadAssets(fsys fs.FS) (map[string]asset, error) {
	m := newMinifier()
	assets := make(map[string]asset)
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		mediatype, _, _ := strings.Cut(contentType, ";")
		if out, err := m.Bytes(mediatype, data); err == nil {
			data = out
		} else if !errors.Is(err, minify.ErrNotExist) {
			log.Printf("Serving %s unminified: %v", name, err)
		}
		assets[name] = asset{contentType: contentType, data: data}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading frontend: %w", err)
	}
	return assets, nil
}

// Handler returns the HTTP routes: the websocket endpoint and the frontend.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.handleWebSocket)

	// Static files (frontend)
	mux.HandleFunc("/", s.handleAsset)
	return mux
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}
	a, ok := s.assets[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	http.ServeContent(w, r, name, s.started, bytes.NewReader(a.data))
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("HTTP server listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
