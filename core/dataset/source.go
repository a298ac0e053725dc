package dataset

import (
	"context"

	"github.com/kilianp07/evprice/core/factory"
)

// Source loads the reference dataset from a backing store.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

var sourceRegistry = factory.NewRegistry[Source]()

// RegisterSource adds a source factory identified by name.
func RegisterSource(name string, f factory.Factory[Source]) error {
	return sourceRegistry.Register(name, f)
}

// NewSource creates a Source from its module configuration.
func NewSource(cfg factory.ModuleConfig) (Source, error) {
	return sourceRegistry.Create(cfg)
}

// StaticSource serves an in-memory dataset.
type StaticSource struct {
	Rows []Row
}

// Load returns a Dataset built from the static rows.
func (s StaticSource) Load(context.Context) (*Dataset, error) {
	return New(s.Rows), nil
}
