package tools

import (
	"github.com/nimbusmcp/nimbus/internal/appconfig"
	"github.com/nimbusmcp/nimbus/internal/upstream"
)

// Service implements the four weather tools against the upstream
// providers. It holds no mutable state: every invocation is an
// independent pipeline of one or two fetches plus formatting, so a single
// Service is safe under whatever dispatch the hosting transport uses.
type Service struct {
	cfg    appconfig.Config
	client *upstream.Client
}

// NewService returns a Service using the given configuration and fetcher.
func NewService(cfg appconfig.Config, client *upstream.Client) *Service {
	return &Service{cfg: cfg, client: client}
}
