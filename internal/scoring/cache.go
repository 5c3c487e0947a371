package scoring

import "sync"

// ModelCache loads models on first use and reuses them across applicant
// runs. The cache is owned by whoever constructs the pipeline, never by the
// pipeline itself; build-on-miss is explicit here.
type ModelCache struct {
	mu     sync.Mutex
	models map[string]*Model
}

// NewModelCache returns an empty cache.
func NewModelCache() *ModelCache {
	return &ModelCache{models: make(map[string]*Model)}
}

// Load returns the model for path, loading it on first request.
func (c *ModelCache) Load(path string) (*Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if model, ok := c.models[path]; ok {
		return model, nil
	}

	model, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	c.models[path] = model
	return model, nil
}
