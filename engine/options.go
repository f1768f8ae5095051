package engine

import "go.uber.org/zap"

// DefaultModuleName is the import module guests use for bridge functions.
const DefaultModuleName = "async-bridge"

// Option configures a Bridge.
type Option func(*config)

type config struct {
	logger           *zap.Logger
	moduleName       string
	memoryLimitPages uint32
}

// WithLogger sets the logger for the bridge.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithModuleName sets the import module name the host functions are exported under.
// An empty name is replaced with DefaultModuleName.
func WithModuleName(name string) Option {
	return func(c *config) {
		c.moduleName = name
	}
}

// WithMemoryLimitPages caps guest linear memory in 64KB pages.
// 0 means the wazero default (65536 pages = 4GB).
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *config) {
		c.memoryLimitPages = pages
	}
}

func buildConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.moduleName == "" {
		c.moduleName = DefaultModuleName
	}
	if c.logger == nil {
		c.logger = Logger()
	}
	return c
}
