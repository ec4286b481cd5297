// Package server is the runtime adapter: it exposes a dashboard snapshot
// over socket.io, translating client events into action invocations and
// invocation results into per-output update emissions.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"

	"github.com/yonkmanjl/vizro/internal/action"
	"github.com/yonkmanjl/vizro/internal/builder"
	"github.com/yonkmanjl/vizro/internal/ctxlog"
	"github.com/yonkmanjl/vizro/internal/ctyutil"
	"github.com/yonkmanjl/vizro/internal/metrics"
)

// SnapshotFunc returns the snapshot to serve. It is called on every event so
// hot rebuilds take effect without reconnects.
type SnapshotFunc func() *builder.Snapshot

// Server serves one dashboard over socket.io, plus /healthz and /metrics.
type Server struct {
	addr     string
	snapshot SnapshotFunc
	mets     *metrics.Metrics
	gatherer prometheus.Gatherer
}

// New creates a server. mets and gatherer may be nil to disable
// instrumentation and the /metrics endpoint.
func New(addr string, snapshot SnapshotFunc, mets *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	return &Server{addr: addr, snapshot: snapshot, mets: mets, gatherer: gatherer}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	opts := socket.DefaultServerOptions()
	opts.SetCors(&types.Cors{Origin: "*"})

	io := socket.NewServer(nil, opts)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		s.handleConnection(ctx, client)
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", io.ServeHandler(nil))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	httpServer := &http.Server{Addr: s.addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving dashboard", "addr", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		io.Close(nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleConnection wires one client's lifecycle: a fresh session, the event
// listeners and the active-session gauge.
func (s *Server) handleConnection(ctx context.Context, client *socket.Socket) {
	snap := s.snapshot()
	sess := NewSession(snap.DarkTheme())
	logger := ctxlog.FromContext(ctx).With("session", sess.ID)
	logger.Info("client connected")

	if s.mets != nil {
		s.mets.ActiveSessions.Inc()
	}

	client.On("select_page", func(datas ...any) {
		payload := asObject(datas)
		pageID, _ := payload["page_id"].(string)
		if _, err := s.snapshot().Registry.Page(pageID); err != nil {
			s.emitError(client, logger, err)
			return
		}
		sess.SelectPage(pageID)
		s.fire(ctx, client, logger, sess, action.Input{ComponentID: pageID, Property: "active"})
	})

	client.On("control_change", func(datas ...any) {
		payload := asObject(datas)
		componentID, _ := payload["component_id"].(string)
		value, err := ctyutil.FromGo(payload["value"])
		if err != nil {
			s.emitError(client, logger, err)
			return
		}
		sess.SetControl(componentID, value)
		s.fire(ctx, client, logger, sess, action.Input{ComponentID: componentID, Property: "value"})
	})

	client.On("chart_click", func(datas ...any) {
		payload := asObject(datas)
		componentID, _ := payload["component_id"].(string)
		column, _ := payload["column"].(string)
		value, err := ctyutil.FromGo(payload["value"])
		if err != nil {
			s.emitError(client, logger, err)
			return
		}
		sess.SetClick(componentID, column, value)
		s.fire(ctx, client, logger, sess, action.Input{ComponentID: componentID, Property: "click_data"})
	})

	client.On("set_theme", func(datas ...any) {
		payload := asObject(datas)
		dark, _ := payload["dark"].(bool)
		sess.SetDark(dark)
		// A theme change re-renders every chart, so it replays the page load.
		if pageID := sess.PageID(); pageID != "" {
			s.fire(ctx, client, logger, sess, action.Input{ComponentID: pageID, Property: "active"})
		}
	})

	client.On("disconnect", func(...any) {
		logger.Info("client disconnected")
		if s.mets != nil {
			s.mets.ActiveSessions.Dec()
		}
	})
}

// fire dispatches a trigger against the current snapshot and emits the
// resulting updates, or a server_error when the invocation fails.
func (s *Server) fire(ctx context.Context, client *socket.Socket, logger *slog.Logger, sess *Session, trigger action.Input) {
	updates, err := dispatch(ctx, s.snapshot(), sess, trigger, s.mets)
	if err != nil {
		s.emitError(client, logger, err)
		return
	}
	logger.Debug("dispatch complete", "trigger", trigger.ComponentID, "updates", len(updates))
	client.Emit("update", updates)
}

func (s *Server) emitError(client *socket.Socket, logger *slog.Logger, err error) {
	logger.Warn("event failed", "error", err)
	client.Emit("server_error", map[string]string{"message": err.Error()})
}

// asObject unwraps the first event argument as a JSON object payload.
func asObject(datas []any) map[string]any {
	if len(datas) == 0 {
		return nil
	}
	obj, _ := datas[0].(map[string]any)
	return obj
}
