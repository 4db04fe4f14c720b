package splitmatch

import (
	"github.com/hupe1980/splitmatch/codec"
	"github.com/hupe1980/splitmatch/internal/resource"
)

type options struct {
	codec       codec.Codec
	logger      *Logger
	metrics     MetricsCollector
	workers     int
	memoryLimit int64
	ioLimit     int64
}

// Option configures an Analyzer.
type Option func(*options)

// WithCodec configures the codec used for JSON reports.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. By default nothing is recorded.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithWorkers sets the number of goroutines used for parsing, split
// generation and scoring. Results do not depend on it.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMemoryLimit caps the bytes held by bipartition buffers.
// 0 disables the limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithIOLimit caps tree-set reads and report writes in bytes per second.
// 0 disables the limit.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

func (o *options) resources() *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   o.memoryLimit,
		IOLimitBytesPerSec: o.ioLimit,
	})
}
