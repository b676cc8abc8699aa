package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/sentiq/pkg/cli/config"
	server "github.com/secmon-lab/sentiq/pkg/controller/http"
	websocket_controller "github.com/secmon-lab/sentiq/pkg/controller/websocket"
	"github.com/secmon-lab/sentiq/pkg/metrics"
	"github.com/secmon-lab/sentiq/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		addr       string
		iapJWKURL  string
		engineCfg  engineConfig
		monitorCfg config.Monitor
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Sources:     cli.EnvVars("SENTIQ_ADDR"),
				Usage:       "Listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.StringFlag{
				Name:        "iap-jwk-url",
				Usage:       "JWK set used to verify Google IAP assertions",
				Category:    "Security",
				Sources:     cli.EnvVars("SENTIQ_IAP_JWK_URL"),
				Value:       server.DefaultIAPJWKURL,
				Destination: &iapJWKURL,
			},
		},
		engineCfg.Flags(),
		monitorCfg.Flags(),
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the alert API, the live feed and the periodic monitor",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			logger := logging.From(ctx)
			logger.Info("starting server",
				"addr", addr,
				"monitor", monitorCfg,
			)

			if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
				return err
			}

			hub := websocket_controller.NewHub(ctx)
			go hub.Run()

			uc, closer, err := engineCfg.configure(ctx, hub)
			defer closer()
			if err != nil {
				return err
			}

			serverOptions := []server.Options{
				server.WithWebSocketHandler(websocket_controller.NewHandler(hub)),
				server.WithMetricsHandler(promhttp.Handler()),
				server.WithIAPJWKURL(iapJWKURL),
			}

			switch {
			case !monitorCfg.Enabled():
				logger.Warn("periodic monitoring is disabled")
			case !engineCfg.hasScoreProvider():
				logger.Warn("periodic monitoring needs --backend-url, monitor is not started")
			default:
				mon, err := monitorCfg.Configure(uc.RunMonitoringPass)
				if err != nil {
					return err
				}
				go func() {
					if err := mon.Run(ctx); err != nil {
						logger.Error("monitor stopped", "error", err)
					}
				}()
				serverOptions = append(serverOptions, server.WithMonitor(mon))
			}

			httpServer := http.Server{
				Addr:              addr,
				Handler:           server.New(uc, serverOptions...),
				ReadTimeout:       30 * time.Second,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			errCh := make(chan error, 1)
			go func() {
				defer close(errCh)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("shutting down", "signal", sig.String())
				cancel()
				if err := hub.Close(); err != nil {
					logger.Error("failed to close alert feed hub", "error", err)
				}

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}
}
