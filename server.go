//////////////////////////////////////////////////////////////////////////////
//
// HTTP streaming adapter
//
// Routes:
//   GET /                 index page
//   GET /streaming        multipart/x-mixed-replace MJPEG stream (alias /events)
//   GET /image            latest frame as a single JPEG
//   GET /ws               frames as binary websocket messages
//   GET /broadcast/{msg}  publish a diagnostic frame showing msg
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package mjpegcast

import (
	"context"
	_ "embed"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/net/netutil"
)

//go:embed index.html
var indexHTML []byte

// How long Shutdown waits for connections to finish.
const shutdownTimeout = 5 * time.Second

// Server exposes a Broadcaster over HTTP.
type Server struct {
	b   *Broadcaster
	enc Encoder
	cfg Config

	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

func NewServer(b *Broadcaster, enc Encoder, cfg Config) *Server {
	s := &Server{
		b:   b,
		enc: enc,
		cfg: cfg,
		mux: http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /streaming", s.handleStream)
	s.mux.HandleFunc("GET /events", s.handleStream)
	s.mux.HandleFunc("GET /image", s.handleImage)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /broadcast/{msg}", s.handleBroadcast)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe binds the configured address and serves until ctx is done.
// A bind failure is returned immediately. On cancellation the broadcaster is
// closed, which ends every open stream, and the server shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxClients > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxClients)
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.b.Close()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errc <- srv.Shutdown(sctx)
	}()

	log.Info("Listening on http://%s", ln.Addr())
	if err := srv.Serve(ln); err != http.ErrServerClosed {
		return errors.Wrap(err, "serve")
	}
	return <-errc
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Write(indexHTML)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn := uuid.NewString()
	sub := s.b.Subscribe()
	defer s.b.Unsubscribe(sub.ID())

	log.Info("[%s] %s streaming as subscriber %d", conn, r.RemoteAddr, sub.ID())

	h := w.Header()
	h.Set("Cache-Control", "no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	h.Set("Connection", "close")
	h.Set("Content-Type", StreamContentType)
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		log.Warn("[%s] flush headers: %v", conn, err)
		return
	}

	var sent int
	for {
		f, err := sub.Next(r.Context())
		if err != nil {
			log.Info("[%s] stream ended after %d frames: %v", conn, sent, err)
			return
		}

		if s.cfg.WriteTimeout > 0 {
			rc.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		}
		if _, err := w.Write(f.Part()); err != nil {
			log.Info("[%s] client gone after %d frames: %v", conn, sent, err)
			return
		}
		if err := rc.Flush(); err != nil {
			log.Info("[%s] client gone after %d frames: %v", conn, sent, err)
			return
		}
		sent++
	}
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	f, ok := s.b.Latest()
	if !ok {
		http.Error(w, "no frame captured yet", http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "image/jpeg")
	h.Set("Content-Length", strconv.Itoa(f.Len()))
	h.Set("Cache-Control", "no-store")
	w.Write(f.JPEG())
}
