// Package upload stores captured run transcripts in remote object
// storage. Providers register themselves by name so the archive target
// is chosen from configuration.
package upload

import (
	"context"
	"fmt"
	"io"
)

// Provider writes a stream to a remote path.
type Provider interface {
	Upload(ctx context.Context, reader io.Reader, remotePath string) error

	// Configure prepares the provider from a flat options map.
	Configure(config map[string]any) error

	Name() string
}

// ProviderFactory creates an unconfigured provider instance.
type ProviderFactory func() Provider

// Registry maps provider names to factories.
var Registry = make(map[string]ProviderFactory)

// RegisterProvider adds a provider factory under the given name.
func RegisterProvider(name string, factory ProviderFactory) {
	Registry[name] = factory
}

// NewProvider instantiates a registered provider by name.
func NewProvider(name string) (Provider, error) {
	factory, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown upload provider: %s", name)
	}
	return factory(), nil
}

func init() {
	RegisterProvider("minio", func() Provider {
		return NewMinioProvider()
	})
}
