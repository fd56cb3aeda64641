package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// DraftStore keeps open forms between requests. Lock/Unlock serialize
// mutations of a single form. Lock hands out a token and Unlock only
// releases the lock while that token still holds it.
type DraftStore interface {
	Get(ctx context.Context, id string) (*Form, error)
	Put(ctx context.Context, form *Form, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, id, token string) error
}

// releaseLock deletes KEYS[1] only if it still holds ARGV[1].
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisDraftStore struct {
	redis *redis.Client
}

func NewRedisDraftStore(redisClient *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redis: redisClient}
}

func draftKey(id string) string {
	return fmt.Sprintf("userform:%s", id)
}

func draftLockKey(id string) string {
	return fmt.Sprintf("userform:%s:lock", id)
}

func (s *RedisDraftStore) Get(ctx context.Context, id string) (*Form, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, err
	}

	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("decode form %s: %w", id, err)
	}
	if form.Errors == nil {
		form.Errors = ErrorMap{}
	}
	return &form, nil
}

func (s *RedisDraftStore) Put(ctx context.Context, form *Form, ttl time.Duration) error {
	data, err := json.Marshal(form)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, draftKey(form.ID), data, ttl).Err()
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, draftKey(id), draftLockKey(id)).Err()
}

func (s *RedisDraftStore) Lock(ctx context.Context, id string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.redis.SetNX(ctx, draftLockKey(id), token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

func (s *RedisDraftStore) Unlock(ctx context.Context, id, token string) error {
	return releaseLock.Run(ctx, s.redis, []string{draftLockKey(id)}, token).Err()
}

// MemoryDraftStore is the in-process store used when Redis is unavailable.
type MemoryDraftStore struct {
	mu    sync.Mutex
	forms map[string]memoryDraft
	locks map[string]memoryLock
	now   func() time.Time
}

type memoryLock struct {
	token string
	until time.Time
}

type memoryDraft struct {
	data    []byte
	expires time.Time
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{
		forms: make(map[string]memoryDraft),
		locks: make(map[string]memoryLock),
		now:   time.Now,
	}
}

func (s *MemoryDraftStore) Get(_ context.Context, id string) (*Form, error) {
	s.mu.Lock()
	entry, ok := s.forms[id]
	if ok && !entry.expires.IsZero() && !s.now().Before(entry.expires) {
		delete(s.forms, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrFormNotFound
	}

	var form Form
	if err := json.Unmarshal(entry.data, &form); err != nil {
		return nil, fmt.Errorf("decode form %s: %w", id, err)
	}
	if form.Errors == nil {
		form.Errors = ErrorMap{}
	}
	return &form, nil
}

// Put stores a copy of form so later mutations by the caller are not seen.
func (s *MemoryDraftStore) Put(_ context.Context, form *Form, ttl time.Duration) error {
	if form == nil {
		return errors.New("nil form")
	}
	data, err := json.Marshal(form)
	if err != nil {
		return err
	}

	var expires time.Time
	if ttl > 0 {
		expires = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.forms[form.ID] = memoryDraft{data: data, expires: expires}
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.forms, id)
	delete(s.locks, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryDraftStore) Lock(_ context.Context, id string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if l, held := s.locks[id]; held && now.Before(l.until) {
		return "", false, nil
	}
	token := uuid.NewString()
	s.locks[id] = memoryLock{token: token, until: now.Add(ttl)}
	return token, true, nil
}

func (s *MemoryDraftStore) Unlock(_ context.Context, id, token string) error {
	s.mu.Lock()
	if l, held := s.locks[id]; held && l.token == token {
		delete(s.locks, id)
	}
	s.mu.Unlock()
	return nil
}
