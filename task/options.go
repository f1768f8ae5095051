package task

import "github.com/google/uuid"

// Option configures a Task.
type Option func(*config)

type config struct {
	id string
}

// WithID sets the correlation ID reported in errors and logs.
// An empty ID is replaced with a random UUID.
func WithID(id string) Option {
	return func(c *config) {
		c.id = id
	}
}

func buildConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	return c
}
