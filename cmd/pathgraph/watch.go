// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pathgraph/mesh"
	"github.com/katalvlaran/pathgraph/metrics"
	"github.com/katalvlaran/pathgraph/overlay"
	"github.com/katalvlaran/pathgraph/panel"
	"github.com/katalvlaran/pathgraph/session"
	"github.com/katalvlaran/pathgraph/watch"
)

func newWatchCommand(flags *globalFlags) *cobra.Command {
	var (
		output      string
		metricsAddr string
		debounce    time.Duration
		show        bool
	)

	cmd := &cobra.Command{
		Use:   "watch <mesh.obj>",
		Short: "Re-export the graph whenever the mesh file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("metrics-addr") {
				metricsAddr = a.cfg.Watch.MetricsAddr
			}
			if !cmd.Flags().Changed("debounce") {
				debounce = a.cfg.Watch.Debounce
			}

			obj, err := a.op.LoadMesh(args[0])
			if err != nil {
				return err
			}
			if err := a.op.CreateLabelLayer(); err != nil {
				return hint(err)
			}
			if output == "" {
				output = obj.Name + ".json"
			}
			written, err := a.op.ExportGraph(output)
			if err != nil {
				return hint(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "JSON file '%s' has been created.\n", written)

			sub := a.op.AutoExport(output)
			defer sub.Close()

			if show {
				settings := a.cfg.Overlay
				settings.ShowLabels = true
				r := overlay.NewRenderer(a.op.Session, overlay.Viewport{}, func(items []overlay.TextItem) {
					fmt.Fprintln(cmd.OutOrStdout(), panel.Canvas(items, panel.CanvasWidth, panel.CanvasHeight))
				}, overlay.WithLogger(a.logger))
				if err := r.SetSettings(settings); err != nil {
					return err
				}
				fitRenderer(a.op.Session, r, a.logger)
				// Subscribed first so reloads are refitted before the renderer draws.
				refit := a.op.Session.Hub().Subscribe(func() { fitRenderer(a.op.Session, r, a.logger) })
				defer refit.Close()
				if err := r.Open(); err != nil {
					return err
				}
				defer r.Close()
				a.op.Session.SetMode(session.ModeEdit)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metricsAddr != "" {
				srv := &http.Server{Addr: metricsAddr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Printf("metrics server: %v", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				a.logger.Printf("serving metrics on %s/metrics", metricsAddr)
			}

			w := watch.New(args[0], obj.Name, a.op,
				watch.WithDebounce(debounce),
				watch.WithLogger(a.logger),
				watch.WithOnReload(func(err error) {
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
					}
				}))
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "export path (default <object name>.json)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before reloading")
	cmd.Flags().BoolVar(&show, "show", false, "print the label overlay after every change")

	return cmd
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// fitRenderer points r at the current extent of the active mesh.
func fitRenderer(sess *session.Session, r *overlay.Renderer, logger *log.Logger) {
	err := sess.Do(func(v *session.View) error {
		obj, err := v.ActiveMesh()
		if err != nil {
			return err
		}
		var pts []mesh.Vec3
		for _, vert := range obj.Mesh.Vertices() {
			pts = append(pts, obj.World(vert.Co))
		}
		r.SetViewport(overlay.Fit(pts, panel.CanvasWidth, panel.CanvasHeight, 1))
		return nil
	})
	if err != nil && !session.Unavailable(err) {
		logger.Printf("fitting overlay: %v", err)
	}
}
