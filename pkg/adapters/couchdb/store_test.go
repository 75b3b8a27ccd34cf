package couchdb_test

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timedpad/pkg/adapters/couchdb"
)

// fakeCouch answers the handful of endpoints the store touches.
type fakeCouch struct {
	mu   sync.Mutex
	dbs  map[string]bool
	docs map[string]map[string]any
	revs int
}

func newFakeCouch() *fakeCouch {
	return &fakeCouch{dbs: map[string]bool{}, docs: map[string]map[string]any{}}
}

func (f *fakeCouch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	parts := strings.SplitN(strings.Trim(r.URL.Path, "/"), "/", 2)
	db := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodHead:
			if !f.dbs[db] {
				w.WriteHeader(http.StatusNotFound)
			}
		case http.MethodPut:
			f.dbs[db] = true
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"ok":true}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id := db + "/" + parts[1]
	switch r.Method {
	case http.MethodGet:
		doc, ok := f.docs[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"not_found","reason":"missing"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(doc)
	case http.MethodPut:
		body := io.Reader(r.Body)
		if r.Header.Get("Content-Encoding") == "gzip" {
			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer gz.Close()
			body = gz
		}
		var doc map[string]any
		if err := json.NewDecoder(body).Decode(&doc); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if current, ok := f.docs[id]; ok && current["_rev"] != doc["_rev"] {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"error":"conflict","reason":"Document update conflict."}`)
			return
		}
		f.revs++
		rev := fmt.Sprintf("%d-abc", f.revs)
		doc["_rev"] = rev
		f.docs[id] = doc
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "id": parts[1], "rev": rev})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCouch()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store, err := couchdb.Open(srv.URL, "")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Initialize(ctx))
	assert.True(t, fake.dbs[couchdb.DefaultDatabase])
	require.NoError(t, store.Initialize(ctx), "second initialize is a no-op")

	_, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "notes", "v1"))
	require.NoError(t, store.Save(ctx, "notes", "v2"), "second save must carry the revision")

	value, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
	assert.Equal(t, "snapshot", fake.docs["timedpad/notes"]["doc_type"])
	assert.Equal(t, "couchdb", store.ComponentType())
}
