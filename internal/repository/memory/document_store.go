package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// StoredDocument is a document's extracted text held for agent queries.
type StoredDocument struct {
	Name    string
	Content string
	AddedAt time.Time
}

// DocumentStore keeps per-session document text available to the knowledge
// agent. Entries are scoped to a session id so concurrent sessions never see
// each other's documents, and they expire with the session cache entry
// rather than living for the process lifetime.
type DocumentStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewDocumentStore(ttl, cleanupInterval time.Duration) *DocumentStore {
	return &DocumentStore{
		cache: cache.New(ttl, cleanupInterval),
	}
}

// Save appends a document to the session's store, replacing any previous
// document with the same name.
func (s *DocumentStore) Save(sessionId string, doc StoredDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.sessionDocs(sessionId)
	replaced := false
	for i, d := range docs {
		if d.Name == doc.Name {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}
	s.cache.Set(sessionId, docs, cache.DefaultExpiration)
}

// Get returns the named document for a session, if present.
func (s *DocumentStore) Get(sessionId, name string) (StoredDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.sessionDocs(sessionId) {
		if d.Name == name {
			return d, true
		}
	}
	return StoredDocument{}, false
}

// AllBySession returns every document ingested for a session, in insertion
// order.
func (s *DocumentStore) AllBySession(sessionId string) []StoredDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.sessionDocs(sessionId)
	out := make([]StoredDocument, len(docs))
	copy(out, docs)
	return out
}

// Remove drops the named document from a session's store.
func (s *DocumentStore) Remove(sessionId, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.sessionDocs(sessionId)
	for i, d := range docs {
		if d.Name == name {
			docs = append(docs[:i], docs[i+1:]...)
			break
		}
	}
	if len(docs) == 0 {
		s.cache.Delete(sessionId)
		return
	}
	s.cache.Set(sessionId, docs, cache.DefaultExpiration)
}

// RemoveByName drops the named document from every session. Used when a
// document is deleted from the library, so stale text stops feeding queries.
func (s *DocumentStore) RemoveByName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sessionId, item := range s.cache.Items() {
		docs, ok := item.Object.([]StoredDocument)
		if !ok {
			continue
		}
		kept := docs[:0]
		for _, d := range docs {
			if d.Name != name {
				kept = append(kept, d)
			}
		}
		if len(kept) == len(docs) {
			continue
		}
		if len(kept) == 0 {
			s.cache.Delete(sessionId)
			continue
		}
		s.cache.Set(sessionId, kept, cache.DefaultExpiration)
	}
}

// Clear drops every document for a session.
func (s *DocumentStore) Clear(sessionId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(sessionId)
}

// Count returns how many documents a session currently holds.
func (s *DocumentStore) Count(sessionId string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessionDocs(sessionId))
}

func (s *DocumentStore) sessionDocs(sessionId string) []StoredDocument {
	if v, ok := s.cache.Get(sessionId); ok {
		if docs, ok := v.([]StoredDocument); ok {
			return docs
		}
	}
	return nil
}
