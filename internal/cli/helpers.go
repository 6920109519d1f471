package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/folio/internal/content"
	"github.com/mesh-intelligence/folio/internal/service"
	"github.com/mesh-intelligence/folio/pkg/sqlite"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func (a *app) attachBackend() (sqlite.Backend, string, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, "", sysError("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: a.settings.Backend,
		DataDir: dataDir,
	}

	backend, err := sqlite.Open(cfg)
	if err != nil {
		return nil, "", sysError("attach backend: %w", err)
	}
	a.logger.Debug("backend attached")
	return backend, dataDir, nil
}

// newService builds the content service over store, merging against the
// configured fallback dataset.
func (a *app) newService(store types.Store, opts ...service.Option) (*service.Service, error) {
	dataset, err := content.LoadDataset(a.settings.FallbackFile)
	if err != nil {
		return nil, userError("%w", err)
	}
	opts = append(opts, service.WithLogger(a.logger))
	return service.New(store, content.NewMerger(dataset), opts...), nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysError("encode output: %w", err)
	}
	return nil
}

// report prints msg, or v as JSON in --json mode.
func (a *app) report(w io.Writer, v any, msg string) error {
	if a.flags.jsonMode {
		return printJSON(w, v)
	}
	_, err := fmt.Fprintln(w, msg)
	return err
}
