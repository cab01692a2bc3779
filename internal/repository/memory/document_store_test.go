package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStore() *DocumentStore {
	return NewDocumentStore(time.Minute, time.Minute)
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := newTestStore()

	store.Save("session-1", StoredDocument{Name: "notes.txt", Content: "hello"})

	doc, ok := store.Get("session-1", "notes.txt")
	assert.True(t, ok)
	assert.Equal(t, "hello", doc.Content)

	_, ok = store.Get("session-1", "missing.txt")
	assert.False(t, ok)
}

func TestDocumentStore_SessionIsolation(t *testing.T) {
	store := newTestStore()

	store.Save("session-1", StoredDocument{Name: "a.txt", Content: "alpha"})
	store.Save("session-2", StoredDocument{Name: "b.txt", Content: "beta"})

	assert.Equal(t, 1, store.Count("session-1"))
	assert.Equal(t, 1, store.Count("session-2"))

	_, ok := store.Get("session-1", "b.txt")
	assert.False(t, ok)
}

func TestDocumentStore_SaveReplacesByName(t *testing.T) {
	store := newTestStore()

	store.Save("session-1", StoredDocument{Name: "a.txt", Content: "v1"})
	store.Save("session-1", StoredDocument{Name: "a.txt", Content: "v2"})

	assert.Equal(t, 1, store.Count("session-1"))
	doc, _ := store.Get("session-1", "a.txt")
	assert.Equal(t, "v2", doc.Content)
}

func TestDocumentStore_AllBySessionKeepsInsertionOrder(t *testing.T) {
	store := newTestStore()

	store.Save("session-1", StoredDocument{Name: "first.txt", Content: "1"})
	store.Save("session-1", StoredDocument{Name: "second.txt", Content: "2"})
	store.Save("session-1", StoredDocument{Name: "third.txt", Content: "3"})

	docs := store.AllBySession("session-1")
	assert.Len(t, docs, 3)
	assert.Equal(t, "first.txt", docs[0].Name)
	assert.Equal(t, "third.txt", docs[2].Name)
}

func TestDocumentStore_RemoveAndClear(t *testing.T) {
	store := newTestStore()

	store.Save("session-1", StoredDocument{Name: "a.txt", Content: "alpha"})
	store.Save("session-1", StoredDocument{Name: "b.txt", Content: "beta"})

	store.Remove("session-1", "a.txt")
	assert.Equal(t, 1, store.Count("session-1"))

	store.Clear("session-1")
	assert.Equal(t, 0, store.Count("session-1"))
	assert.Empty(t, store.AllBySession("session-1"))
}
