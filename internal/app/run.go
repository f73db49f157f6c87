package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/verton/internal/compiler"
	"github.com/specialistvlad/verton/internal/ctxlog"
	"github.com/specialistvlad/verton/internal/garage"
	"github.com/specialistvlad/verton/internal/hcl"
	"github.com/specialistvlad/verton/internal/scheduler"
	"github.com/specialistvlad/verton/internal/session"
	"github.com/specialistvlad/verton/internal/stage"
	"github.com/specialistvlad/verton/internal/stage/memstage"
	"github.com/specialistvlad/verton/internal/stage/sockstage"
)

// shutdownTimeout bounds how long closing the session and stage may take.
const shutdownTimeout = 5 * time.Second

// Run plays the graph until the frame limit is reached, ctx is cancelled or
// a frame fails, then prints the report.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	if a.config.PrintSettings {
		_, err := a.outW.Write(hcl.Render(a.settings))
		return err
	}

	g, err := garage.Load(a.config.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	if a.config.DumpGraph {
		return g.Encode(a.outW)
	}
	logger.Info("Graph loaded.", "path", a.config.GraphPath, "vertexes", len(g.Vertexes), "edges", len(g.Edges))

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer func() {
			if err := a.closeHealthcheckServer(ctx); err != nil {
				logger.Warn("Failed to close health check server.", "error", err)
			}
		}()
	}

	compiled, err := compiler.Compile(ctx, g.Vertexes, g.Edges)
	if err != nil {
		return fmt.Errorf("failed to compile graph: %w", err)
	}

	st, closeStage, err := a.openStage(ctx)
	if err != nil {
		return err
	}
	defer closeStage()

	ticker, err := scheduler.NewTicker(a.settings.Session.FrameRate)
	if err != nil {
		return err
	}

	logger.Info("🚀 Starting play...", "frame_rate", a.settings.Session.FrameRate, "frames", a.settings.Session.Frames)
	sess, err := session.Start(ctx, compiled, st, ticker, session.Options{MaxFrames: a.settings.Session.Frames})
	if err != nil {
		return err
	}
	runErr := sess.Wait()

	// The session has stopped, so its values are final and readable without
	// the caller's context.
	readCtx := context.WithoutCancel(ctx)
	frames, err := sess.Frames(readCtx)
	if err != nil {
		return err
	}
	readings, err := sess.Readings(readCtx)
	if err != nil {
		return err
	}
	if err := writeReport(a.outW, frames, readings, st.Elements()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	closeCtx, cancel := context.WithTimeout(readCtx, shutdownTimeout)
	defer cancel()
	if err := sess.Close(closeCtx); err != nil {
		logger.Warn("Failed to close session.", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("play failed: %w", runErr)
	}
	logger.Info("🏁 Play finished.", "frames", frames)
	return nil
}

// openStage returns the in-memory stage, or the socket.io stage when an
// address is configured, together with its close function.
func (a *App) openStage(ctx context.Context) (stage.Stage, func(), error) {
	s := a.settings.Stage
	bounds := stage.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
	if s.Listen == "" {
		return memstage.New(bounds), func() {}, nil
	}

	srv, err := sockstage.Listen(ctx, sockstage.Options{Addr: s.Listen, Bounds: bounds})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start stage server: %w", err)
	}
	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Close(closeCtx); err != nil {
			ctxlog.FromContext(ctx).Warn("Failed to close stage server.", "error", err)
		}
	}
	return srv, closeFn, nil
}
