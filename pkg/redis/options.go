package redis

import "time"

// Option configures a connection opened with Open.
type Option func(*config)

type config struct {
	poolSize     int
	minIdle      int
	maxIdleTime  time.Duration
	maxLifetime  time.Duration
	attempts     int
	backoff      time.Duration
	dialTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func defaultConfig() config {
	return config{
		poolSize:     10,
		minIdle:      2,
		maxIdleTime:  10 * time.Minute,
		maxLifetime:  30 * time.Minute,
		attempts:     3,
		backoff:      2 * time.Second,
		dialTimeout:  5 * time.Second,
		readTimeout:  3 * time.Second,
		writeTimeout: 3 * time.Second,
	}
}

// WithPoolSize sets the maximum and minimum idle number of pooled
// connections. Default: 10 and 2.
func WithPoolSize(size, minIdle int) Option {
	return func(c *config) {
		c.poolSize = size
		c.minIdle = minIdle
	}
}

// WithConnLifetime bounds how long a pooled connection may stay idle and
// how long it may live at all.
func WithConnLifetime(idle, total time.Duration) Option {
	return func(c *config) {
		c.maxIdleTime = idle
		c.maxLifetime = total
	}
}

// WithRetry sets how many times Open pings before giving up. The wait
// between attempts grows linearly from backoff.
// Default: 3 attempts, 2s.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *config) {
		c.attempts = attempts
		c.backoff = backoff
	}
}

// WithTimeouts sets dial, read and write timeouts.
func WithTimeouts(dial, read, write time.Duration) Option {
	return func(c *config) {
		c.dialTimeout = dial
		c.readTimeout = read
		c.writeTimeout = write
	}
}
