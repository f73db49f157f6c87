// Package sockstage serves a stage over socket.io. A browser connected to
// it mirrors the elements a session places and moves, and forwards its
// pointer events back to the session.
//
// Outgoing events: `sync` (sent once on connect with every element),
// `create`, `move`, `remove` and `clear`. Incoming events: `click`,
// `pointerdown`, `pointermove` and `pointerup`, each with a
// `{clientX, clientY, buttons}` payload.
package sockstage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"

	"github.com/specialistvlad/verton/internal/ctxlog"
	"github.com/specialistvlad/verton/internal/input"
	"github.com/specialistvlad/verton/internal/stage"
	"github.com/specialistvlad/verton/internal/stage/memstage"
)

// Event names exchanged with the browser.
const (
	EventSync   = "sync"
	EventCreate = "create"
	EventMove   = "move"
	EventRemove = "remove"
	EventClear  = "clear"
)

// pointerPayload is what the browser sends for every pointer event.
type pointerPayload struct {
	ClientX float64 `json:"clientX"`
	ClientY float64 `json:"clientY"`
	Buttons int     `json:"buttons"`
}

// Server is a stage whose elements are broadcast to socket.io clients.
type Server struct {
	*memstage.Stage

	logger     *slog.Logger
	io         *socket.Server
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}

	closeOnce sync.Once
	closeErr  error
}

var (
	_ stage.Stage = (*Server)(nil)
	_ stage.Mover = (*Server)(nil)
)

// Options configures a Server.
type Options struct {
	// Addr is the TCP address to listen on, e.g. ":8080" or "127.0.0.1:0".
	Addr   string
	Bounds stage.Rect
	// Mux, if set, receives the socket.io and /health routes instead of a
	// private one.
	Mux *http.ServeMux
}

// Listen starts serving the stage. It returns once the socket is bound.
func Listen(ctx context.Context, opts Options) (*Server, error) {
	logger := ctxlog.FromContext(ctx).With("component", "sockstage")

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %q: %w", opts.Addr, err)
	}

	s := &Server{
		Stage:    memstage.New(opts.Bounds),
		logger:   logger,
		listener: ln,
		done:     make(chan struct{}),
	}

	serverOpts := socket.DefaultServerOptions()
	serverOpts.SetCors(&types.Cors{Origin: "*", Credentials: true})
	s.io = socket.NewServer(nil, nil)
	s.io.On("connection", s.onConnection)

	mux := opts.Mux
	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.Handle("/socket.io/", s.io.ServeHandler(serverOpts))
	mux.HandleFunc("/health", s.healthHandler)

	s.httpServer = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		defer close(s.done)
		logger.Info("🎭 Stage server starting", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Stage server failed unexpectedly", "error", err)
		}
	}()
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close disconnects every client, then shuts the HTTP server down, waiting
// up to the context deadline. Later calls return the first result.
func (s *Server) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.closeErr = s.shutdown(ctx)
	})
	return s.closeErr
}

func (s *Server) shutdown(ctx context.Context) error {
	s.logger.Debug("Shutting down stage server...")

	// Upgraded websocket connections are hijacked, so http.Server.Shutdown
	// does not see them; the socket.io server has to drop its clients.
	s.io.Close(func(err error) {
		if err != nil {
			s.logger.Warn("Socket.io server close failed", "error", err)
		}
	})

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("stage server shutdown failed: %w", err)
	}
	<-s.done
	s.logger.Debug("Stage server shut down gracefully.")
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) onConnection(clients ...any) {
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		s.logger.Warn("Unexpected connection argument", "type", fmt.Sprintf("%T", clients[0]))
		return
	}
	logger := s.logger.With("sid", string(client.Id()))
	logger.Info("Stage client connected")

	client.On("click", s.pointerHandler(logger, input.Click))
	client.On("pointerdown", s.pointerHandler(logger, input.PointerDown))
	client.On("pointermove", s.pointerHandler(logger, input.PointerMove))
	client.On("pointerup", s.pointerHandler(logger, input.PointerUp))
	client.On("disconnect", func(reason ...any) {
		logger.Info("Stage client disconnected", "reason", reason)
	})

	client.Emit(EventSync, s.Stage.Elements())
}

func (s *Server) pointerHandler(logger *slog.Logger, et input.EventType) func(...any) {
	return func(args ...any) {
		ev, err := decodePointer(et, args)
		if err != nil {
			logger.Warn("Dropping malformed pointer event", "event", et.String(), "error", err)
			return
		}
		s.Stage.Emit(ev)
	}
}

func decodePointer(et input.EventType, args []any) (input.Event, error) {
	if len(args) == 0 {
		return input.Event{}, errors.New("missing payload")
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return input.Event{}, err
	}
	var p pointerPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return input.Event{}, err
	}
	return input.Event{Type: et, ClientX: p.ClientX, ClientY: p.ClientY, Buttons: p.Buttons}, nil
}

// CreateElement places the element and broadcasts it.
func (s *Server) CreateElement(id, text string, x, y float64) error {
	if err := s.Stage.CreateElement(id, text, x, y); err != nil {
		return err
	}
	s.io.Emit(EventCreate, stage.Element{ID: id, Text: text, X: x, Y: y})
	return nil
}

// SetAttr updates the element and broadcasts its new position.
func (s *Server) SetAttr(id, name string, v float64) error {
	if err := s.Stage.SetAttr(id, name, v); err != nil {
		return err
	}
	el, err := s.Stage.Element(id)
	if err != nil {
		return err
	}
	s.broadcastMove(el)
	return nil
}

func (s *Server) broadcastMove(el stage.Element) {
	s.io.Emit(EventMove, map[string]any{"id": el.ID, "x": el.X, "y": el.Y})
}

// MoveBy shifts the element on both axes and broadcasts one move.
func (s *Server) MoveBy(id string, dx, dy float64) (stage.Element, error) {
	el, err := s.Stage.MoveBy(id, dx, dy)
	if err != nil {
		return stage.Element{}, err
	}
	s.broadcastMove(el)
	return el, nil
}

// RemoveElement deletes the element and broadcasts the removal.
func (s *Server) RemoveElement(id string) error {
	if err := s.Stage.RemoveElement(id); err != nil {
		return err
	}
	s.io.Emit(EventRemove, map[string]any{"id": id})
	return nil
}

// Clear empties the stage and tells every client to do the same.
func (s *Server) Clear() error {
	if err := s.Stage.Clear(); err != nil {
		return err
	}
	s.io.Emit(EventClear)
	return nil
}
