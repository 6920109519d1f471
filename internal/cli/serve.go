package cli

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/internal/api"
	"github.com/mesh-intelligence/folio/internal/auth"
	"github.com/mesh-intelligence/folio/internal/paths"
	"github.com/mesh-intelligence/folio/internal/service"
	"github.com/mesh-intelligence/folio/internal/uploads"
)

const uploadsURLPrefix = "/uploads"

func newServeCmd(a *app) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio and editor API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = a.settings.Listen
			}

			backend, dataDir, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			gate, err := auth.NewGate(auth.Config{
				Username: a.settings.AdminUsername,
				Password: a.settings.AdminPassword,
				Secret:   a.settings.SessionSecret,
				TTL:      a.settings.SessionTTL,
				Secure:   a.settings.SecureCookies,
			})
			if err != nil {
				return sysError("%w", err)
			}
			if a.settings.AdminUsername == "" || a.settings.AdminPassword == "" {
				a.logger.Warn("admin credentials not configured; editor login is disabled")
			}

			cache := api.NewPageCache()
			svc, err := a.newService(backend,
				service.WithAuthorizer(auth.Session{}),
				service.WithNotifier(cache),
			)
			if err != nil {
				return err
			}

			uploadsDir, err := paths.ResolveUploadsDir(a.settings.UploadsDir, dataDir)
			if err != nil {
				return sysError("resolve uploads dir: %w", err)
			}
			if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
				return sysError("create uploads dir: %w", err)
			}

			srv := api.New(api.Options{
				Service: svc,
				Gate:    gate,
				Cache:   cache,
				Files: &uploads.Local{
					Dir:       uploadsDir,
					URLPrefix: uploadsURLPrefix,
					MaxBytes:  a.settings.MaxUploadBytes,
				},
				FilesDir:       uploadsDir,
				MaxUploadBytes: a.settings.MaxUploadBytes,
				Logger:         a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("serving",
				zap.String("listen", listen),
				zap.String("data_dir", dataDir),
				zap.String("uploads_dir", uploadsDir),
			)
			if err := srv.ListenAndServe(ctx, listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return sysError("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default: config listen)")
	return cmd
}
