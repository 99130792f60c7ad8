// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quadgram

import "sync"

// Loader builds a model from some external resource.
type Loader func() (*Model, error)

// Provider is the process's handle on the quadgram model. The loader runs at
// most once, on first use; its model (or error) is cached and returned to
// every later caller. Concurrent first calls block until the single build
// finishes.
type Provider struct {
	load  Loader
	once  sync.Once
	model *Model
	err   error
}

// NewProvider wraps a loader.
func NewProvider(load Loader) *Provider {
	return &Provider{load: load}
}

// FileProvider loads the corpus file at path on first use.
func FileProvider(path string, unseenPenalty float64) *Provider {
	return NewProvider(func() (*Model, error) {
		return LoadFile(path, unseenPenalty)
	})
}

// Static returns a provider for an already built model.
func Static(m *Model) *Provider {
	p := &Provider{model: m}
	p.once.Do(func() {})
	return p
}

// Model returns the cached model, building it on the first call.
func (p *Provider) Model() (*Model, error) {
	p.once.Do(func() {
		p.model, p.err = p.load()
	})
	return p.model, p.err
}
