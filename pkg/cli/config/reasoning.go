package config

import (
	"github.com/tailkeep-lab/tailkeep/pkg/domain/interfaces"
	"github.com/tailkeep-lab/tailkeep/pkg/service/reasoning"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Reasoning holds CLI flags for the remote reasoning service
type Reasoning struct {
	endpoint string
	token    string
}

// Flags returns CLI flags for reasoning configuration
func (r *Reasoning) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "reasoning-endpoint",
			Usage:       "Remote reasoning service endpoint URL (empty disables the remote path)",
			Sources:     cli.EnvVars("TAILKEEP_REASONING_ENDPOINT"),
			Destination: &r.endpoint,
		},
		&cli.StringFlag{
			Name:        "reasoning-token",
			Usage:       "Bearer token for the reasoning service (optional)",
			Sources:     cli.EnvVars("TAILKEEP_REASONING_TOKEN"),
			Destination: &r.token,
		},
	}
}

// Endpoint returns the configured endpoint URL
func (r *Reasoning) Endpoint() string {
	return r.endpoint
}

// Configure builds the reasoning client. Without an endpoint it returns
// nil: the assistant then answers everything via the local fallback.
func (r *Reasoning) Configure() (interfaces.ReasoningClient, error) {
	if r.endpoint == "" {
		logging.Default().Warn("Reasoning endpoint not configured, running in local-only mode")
		return nil, nil
	}

	var opts []reasoning.Option
	if r.token != "" {
		opts = append(opts, reasoning.WithToken(r.token))
	}

	client, err := reasoning.New(r.endpoint, opts...)
	if err != nil {
		return nil, err
	}

	logging.Default().Info("Remote reasoning enabled", "endpoint", r.endpoint)
	return client, nil
}
