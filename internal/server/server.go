package server

import (
	"bytes"
	"context"
	"io/fs"
	"net"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/soar/ScratchPadBridge/internal/gamepad"
	"github.com/soar/ScratchPadBridge/internal/hub"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/json"
)

// DescriptorFile is the extension descriptor expected in the web FS.
const DescriptorFile = "extension.s2e"

const portPlaceholder = `"__PORT__"`

type Server struct {
	l           hclog.Logger
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	pool        *gamepad.Pool
	descriptor  []byte
	addr        string
	httpServer  *http.Server
}

// New builds the server. h and b may be nil to disable the /ws endpoint.
func New(l hclog.Logger, pool *gamepad.Pool, h *hub.Hub, b *hub.Broadcaster, webFS fs.FS, addr string) (*Server, error) {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	descriptor, err := LoadDescriptor(webFS, addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		l:           l,
		hub:         h,
		broadcaster: b,
		pool:        pool,
		descriptor:  descriptor,
		addr:        addr,
	}, nil
}

// LoadDescriptor reads the extension descriptor, fills in the port of addr
// and minifies it.
func LoadDescriptor(webFS fs.FS, addr string) ([]byte, error) {
	raw, err := fs.ReadFile(webFS, DescriptorFile)
	if err != nil {
		return nil, errors.Wrap(err, "read extension descriptor")
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen address %q", addr)
	}
	if port == "" || port == "0" {
		port = "80"
	}
	raw = bytes.ReplaceAll(raw, []byte(portPlaceholder), []byte(port))

	m := minify.New()
	m.AddFunc("application/json", json.Minify)
	out, err := m.Bytes("application/json", raw)
	if err != nil {
		return nil, errors.Wrap(err, "minify extension descriptor")
	}
	return out, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/poll", handlePoll(s.pool))
	mux.HandleFunc("/reset_all", handleResetAll)
	mux.HandleFunc("/crossdomain.xml", handleCrossDomain)
	mux.HandleFunc("/"+DescriptorFile, handleDescriptor(s.descriptor))

	if s.hub != nil && s.broadcaster != nil {
		mux.HandleFunc("/ws", handleWebSocket(s.l, s.hub, s.broadcaster, s.pool))
	}
	return mux
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.l.Info("HTTP server listening", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.l.Info("Shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
