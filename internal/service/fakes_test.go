package service

import (
	"context"
	"strings"
	"sync"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/contract"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// fakeUow backs service tests with in-memory repositories so persistence
// side effects are observable without a database. It satisfies both the
// factory and the unit-of-work interfaces.
type fakeUow struct {
	sessions  *fakeSessionRepo
	messages  *fakeMessageRepo
	documents *fakeDocumentRepo
	activity  *fakeActivityRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		sessions:  &fakeSessionRepo{items: map[uuid.UUID]*entity.ChatSession{}},
		messages:  &fakeMessageRepo{items: map[uuid.UUID]*entity.ChatMessage{}},
		documents: &fakeDocumentRepo{items: map[uuid.UUID]*entity.Document{}},
		activity:  &fakeActivityRepo{},
	}
}

func (u *fakeUow) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return u }

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) DocumentRepository() contract.DocumentRepository       { return u.documents }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return u.sessions }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return u.messages }
func (u *fakeUow) ActivityRepository() contract.ActivityRepository       { return u.activity }

type fakeSessionRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.ChatSession
}

func (r *fakeSessionRepo) put(s *entity.ChatSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.items[s.Id] = &cp
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.ChatSession) error {
	r.put(s)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s *entity.ChatSession) error {
	r.put(s)
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if s, found := r.items[byID.ID]; found {
				cp := *s
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ChatSession, 0, len(r.items))
	for _, s := range r.items {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

type fakeMessageRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.ChatMessage
}

func (r *fakeMessageRepo) put(m *entity.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.items[m.Id] = &cp
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	r.put(m)
	return nil
}

func (r *fakeMessageRepo) Update(ctx context.Context, m *entity.ChatMessage) error {
	r.put(m)
	return nil
}

func (r *fakeMessageRepo) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.items {
		if m.ChatSessionId == sessionId {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if m, found := r.items[byID.ID]; found {
				cp := *m
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sessionId *uuid.UUID
	role := ""
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			id := s.SessionID
			sessionId = &id
		case specification.ByRole:
			role = s.Role
		}
	}
	out := []*entity.ChatMessage{}
	for _, m := range r.items {
		if sessionId != nil && m.ChatSessionId != *sessionId {
			continue
		}
		if role != "" && m.Role != role {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	msgs, err := r.FindAll(ctx, specs...)
	return int64(len(msgs)), err
}

type fakeDocumentRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Document
}

func (r *fakeDocumentRepo) put(d *entity.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.items[d.Id] = &cp
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	r.put(d)
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	r.put(d)
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.items[id]; ok {
		d.IsDeleted = true
	}
	return nil
}

func (r *fakeDocumentRepo) DeleteUnscoped(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if d, found := r.items[byID.ID]; found && !d.IsDeleted {
				cp := *d
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Document{}
	for _, d := range r.items {
		if d.IsDeleted {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := ""
	excludeDeleted := false
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByName:
			name = s.Name
		case specification.NotDeleted:
			excludeDeleted = true
		}
	}
	var count int64
	for _, d := range r.items {
		if excludeDeleted && d.IsDeleted {
			continue
		}
		if name != "" && !strings.EqualFold(d.Name, name) {
			continue
		}
		count++
	}
	return count, nil
}

type fakeActivityRepo struct {
	mu    sync.Mutex
	items []*entity.ActivityItem
}

func (r *fakeActivityRepo) Create(ctx context.Context, item *entity.ActivityItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeActivityRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.ActivityItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *fakeActivityRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}
