package cove

import (
	"log/slog"

	httpclient "github.com/covetools/cove/pkg/adapters/http"
	"github.com/covetools/cove/pkg/adapters/local"
	"github.com/covetools/cove/pkg/ports"
	"github.com/covetools/cove/pkg/registry"
)

// Version is the library release identifier.
const Version = "0.3.0"

// NewLocalManager creates a workspace manager operating on the local
// filesystem, resolving relative workspace paths against rootDir.
func NewLocalManager(rootDir string, opts ...local.Option) (ports.Manager, error) {
	return local.New(rootDir, opts...)
}

// NewRemoteManager creates a workspace manager that forwards every call to a
// cove workspace service at address.
func NewRemoteManager(address string, opts ...httpclient.ClientOption) ports.Manager {
	return httpclient.NewClient(address, opts...)
}

// Operations returns the built-in operation registry.
func Operations() *registry.Registry {
	return registry.Default()
}

// WithLogger is re-exported for the common case of wiring a logger into the
// local manager without importing the adapter package.
func WithLogger(logger *slog.Logger) local.Option {
	return local.WithLogger(logger)
}
