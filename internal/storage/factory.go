// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import "fmt"

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options holds configuration for store creation.
type Options struct {
	// Backend selects the implementation: memory, file, sqlite or redis.
	Backend string

	// Path is the data file location (file and sqlite backends).
	Path string

	// RedisURL is the Redis connection URL (redis backend).
	RedisURL string

	// RedisPrefix is the key prefix (redis backend).
	RedisPrefix string
}

// Open creates a store for the configured backend.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file backend requires a path")
		}
		return NewFileStore(opts.Path)
	case BackendSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		return NewSQLiteStore(opts.Path)
	case BackendRedis:
		redisOpts := DefaultRedisStoreOptions()
		redisOpts.URL = opts.RedisURL
		if opts.RedisPrefix != "" {
			redisOpts.Prefix = opts.RedisPrefix
		}
		return NewRedisStore(redisOpts)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
