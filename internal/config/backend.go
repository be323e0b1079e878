package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	BackendKindRemote = "remote"
	BackendKindONNX   = "onnx"
)

// Backend selects and configures the prediction backend. Exactly one
// production implementation is active per process.
type Backend struct {
	Kind string `env:"BACKEND_KIND" envDefault:"remote"`

	// Remote backend.
	Endpoint       string        `env:"BACKEND_ENDPOINT"`
	HealthEndpoint string        `env:"BACKEND_HEALTH_ENDPOINT"`
	AuthToken      string        `env:"BACKEND_AUTH_TOKEN" json:"-"`
	Timeout        time.Duration `env:"BACKEND_TIMEOUT" envDefault:"30s"`

	// ONNX backend.
	ModelPath string `env:"BACKEND_MODEL_PATH"`
}

func (b Backend) validate() error {
	switch b.Kind {
	case BackendKindRemote:
		if b.Endpoint == "" {
			return errors.New("BACKEND_ENDPOINT is required for the remote backend")
		}
	case BackendKindONNX:
		if b.ModelPath == "" {
			return errors.New("BACKEND_MODEL_PATH is required for the onnx backend")
		}
	default:
		return fmt.Errorf("unknown backend kind %q", b.Kind)
	}

	return nil
}
