package platform

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/timedpad/pkg/adapters/bolt"
	"github.com/aretw0/timedpad/pkg/adapters/couchdb"
	"github.com/aretw0/timedpad/pkg/adapters/fs"
	"github.com/aretw0/timedpad/pkg/adapters/memory"
	"github.com/aretw0/timedpad/pkg/adapters/redis"
	"github.com/aretw0/timedpad/pkg/core"
	"github.com/aretw0/timedpad/pkg/notepad"
	"github.com/aretw0/timedpad/pkg/snapshot"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS      = "fs"
	AdapterBolt    = "bolt"
	AdapterRedis   = "redis"
	AdapterCouchDB = "couchdb"
	AdapterMemory  = "memory"
)

// Adapters lists every adapter name in display order.
var Adapters = []string{AdapterFS, AdapterBolt, AdapterRedis, AdapterCouchDB, AdapterMemory}

// BoltFileName is used when the bolt URI names a directory.
const BoltFileName = "timedpad.db"

// New opens a notepad on the store selected by the options.
// The URI is adapter-specific: a data directory for fs, a database file (or
// its directory) for bolt, a redis:// URL, a CouchDB DSN; memory ignores it.
//
//	pad, err := platform.New(ctx, "./notes", platform.WithFormat("yaml"))
func New(ctx context.Context, uri string, opts ...Option) (*notepad.Notepad, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	codec, err := snapshot.ByName(o.format)
	if err != nil {
		return nil, err
	}

	store, err := open(ctx, uri, o, codec)
	if err != nil {
		return nil, err
	}

	padOpts := append([]notepad.Option{notepad.WithCodec(codec), notepad.WithLogger(o.logger)}, o.notepad...)
	pad, err := notepad.Open(ctx, store, padOpts...)
	if err != nil {
		closeStore(store)
		return nil, err
	}
	return pad, nil
}

// OpenStore builds and initializes the store selected by the options without
// loading any snapshot.
func OpenStore(ctx context.Context, uri string, opts ...Option) (core.KeyValueStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	codec, err := snapshot.ByName(o.format)
	if err != nil {
		return nil, err
	}
	return open(ctx, uri, o, codec)
}

func open(ctx context.Context, uri string, o *options, codec snapshot.Codec) (core.KeyValueStore, error) {
	if o.store != nil {
		return o.store, nil
	}

	var (
		store core.KeyValueStore
		err   error
	)
	switch o.adapter {
	case AdapterFS:
		store = newFS(uri, o, codec)
	case AdapterBolt:
		store, err = bolt.Open(boltPath(resolvePath(uri, o)))
	case AdapterRedis:
		prefix, _ := o.config["redis_prefix"].(string)
		store, err = redis.Open(uri, prefix)
	case AdapterCouchDB:
		dbName, _ := o.config["couch_db"].(string)
		store, err = couchdb.Open(uri, dbName)
	case AdapterMemory:
		store = memory.New(0)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if initializer, ok := store.(core.Initializer); ok {
		if err := initializer.Initialize(ctx); err != nil {
			closeStore(store)
			return nil, err
		}
	}
	return store, nil
}

// resolvePath applies the dev sandbox to file-based adapters.
func resolvePath(path string, o *options) string {
	tempDir, _ := o.config["temp_dir"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	bypass := readOnly || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypass)
	resolved := ResolveDataPath(path, useTemp)

	if o.logger != nil && useTemp && resolved != filepath.Clean(path) {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}

func newFS(path string, o *options, codec snapshot.Codec) *fs.Store {
	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	debounce, _ := o.config["debounce"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewStore(fs.Config{
		Path:         resolvePath(path, o),
		Ext:          codec.Ext(),
		MustExist:    mustExist,
		ReadOnly:     readOnly,
		Logger:       o.logger,
		Debounce:     debounce,
		ErrorHandler: errorHandler,
	})
}

func boltPath(path string) string {
	if strings.HasSuffix(path, ".db") {
		return path
	}
	return filepath.Join(path, BoltFileName)
}

func closeStore(store core.KeyValueStore) {
	if c, ok := store.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			slog.Debug("failed to close store", "error", err)
		}
	}
}
