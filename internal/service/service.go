// Package service implements the portfolio operations used by the HTTP API
// and the CLI: merged reads that never fail, collection and profile
// updates, the individual project lifecycle, and seeding.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/internal/content"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Paths passed to the Notifier after writes.
const (
	PathHome              = "/"
	PathProjectsDashboard = "/dashboard/projects"
)

// Authorizer decides whether the caller behind ctx may write.
type Authorizer interface {
	Authorized(ctx context.Context) bool
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context) bool

// Authorized calls f(ctx).
func (f AuthorizerFunc) Authorized(ctx context.Context) bool { return f(ctx) }

// Notifier receives the paths whose cached rendering is stale after a write.
type Notifier interface {
	Invalidate(paths ...string)
}

type nopNotifier struct{}

func (nopNotifier) Invalidate(...string) {}

// Service runs portfolio operations against a Store.
type Service struct {
	store    types.Store
	merger   *content.Merger
	auth     Authorizer
	notifier Notifier
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithAuthorizer sets the write gate. Without one every write is refused.
func WithAuthorizer(a Authorizer) Option {
	return func(s *Service) { s.auth = a }
}

// WithNotifier sets the receiver of invalidation paths.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New returns a Service over an attached store. merger supplies the
// fallback dataset for reads.
func New(store types.Store, merger *content.Merger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		merger:   merger,
		auth:     AuthorizerFunc(func(context.Context) bool { return false }),
		notifier: nopNotifier{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) table(name string) (types.Table, error) {
	return s.store.GetTable(name)
}
