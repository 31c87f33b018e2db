// Package kv provides the durable key-value seam that client-state stores
// persist through. Values are opaque strings (JSON for anything structured),
// mirroring the string-keyed, string-valued storage web clients get from the
// browser.
//
// Three backends ship out of the box: MemoryStore for tests and ephemeral
// runs, FileStore for a per-user state file, and RedisStore for shared
// deployments. Anything satisfying the Store interface can be plugged into
// the session and cart stores.
//
// # Usage
//
//	store, err := kv.NewFileStore(filepath.Join(cfgDir, "state.json"))
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	if err := store.Set(ctx, "token", token); err != nil {
//	    return err
//	}
//
// Missing keys are reported as ErrKeyNotFound so callers can distinguish
// "never persisted" from real storage failures.
package kv
