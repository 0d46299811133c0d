package bootstrap

import (
	"context"
	"fmt"
	"sync"

	"marketfeed/config"
)

// Context carries shared state between hooks (the fixer registry, the
// socket registry, the metrics server) so later hooks can depend on
// what earlier ones constructed.
type Context struct {
	Config *config.Config
	Data   map[string]interface{}
	ctx    context.Context
	mu     sync.RWMutex
}

func NewContext(cfg *config.Config) *Context {
	return &Context{
		Config: cfg,
		Data:   make(map[string]interface{}),
		ctx:    context.Background(),
	}
}

func (c *Context) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Data[key] = value
}

func (c *Context) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.Data[key]
	return val, ok
}

// MustGet panics if key is absent; used by late-priority hooks that
// depend on an earlier hook having run.
func (c *Context) MustGet(key string) interface{} {
	val, ok := c.Get(key)
	if !ok {
		panic(fmt.Sprintf("bootstrap context key %q not found", key))
	}
	return val
}
