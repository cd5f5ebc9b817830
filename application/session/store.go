package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"sayitloud/domain/entities"
	"sayitloud/infrastructure/persistence"
	pkgerrors "sayitloud/pkg/errors"
)

// Store holds the current authenticated identity and token. It is the only
// cross-view shared mutable resource and the only component allowed to
// write persisted client state. Lifecycle: init-empty, hydrate-once,
// mutate-on-event (login/logout/profile-update), clear-on-expiry.
//
// All access is mutex-guarded: unlike the original cooperative runtime,
// mutations here can interleave with reads from other goroutines.
type Store struct {
	mu      sync.RWMutex
	storage persistence.Storage
	logger  *zap.Logger

	user     *entities.AuthenticatedUser
	token    string
	loading  bool
	hydrated bool

	listenerSeq int
	listeners   map[int]func()
}

// NewStore creates an empty, not-yet-hydrated session store.
func NewStore(storage persistence.Storage, logger *zap.Logger) *Store {
	return &Store{
		storage:   storage,
		logger:    logger,
		loading:   true,
		listeners: make(map[int]func()),
	}
}

// Hydrate loads the persisted token and identity. It runs at most once;
// later calls are no-ops. A missing or corrupt persisted identity leaves
// the store empty rather than failing startup.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return nil
	}
	s.hydrated = true

	token, tokenErr := s.storage.Get(persistence.KeyToken)
	userData, userErr := s.storage.Get(persistence.KeyUser)

	if tokenErr == nil && userErr == nil {
		var user entities.AuthenticatedUser
		if err := json.Unmarshal(userData, &user); err != nil {
			s.logger.Warn("discarding corrupt persisted identity", zap.Error(err))
		} else {
			s.token = string(token)
			s.user = &user
		}
	} else if tokenErr != nil && !pkgerrors.IsNotFound(tokenErr) {
		s.loading = false
		s.mu.Unlock()
		return pkgerrors.Wrap(tokenErr, "hydrating session")
	}

	s.loading = false
	s.mu.Unlock()

	s.notify()
	return nil
}

// Login stores the authenticated identity and persists it.
func (s *Store) Login(user *entities.AuthenticatedUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return pkgerrors.NewInternalError("encoding identity").WithCause(err)
	}

	s.mu.Lock()
	if err := s.storage.Set(persistence.KeyToken, []byte(user.Token)); err != nil {
		s.mu.Unlock()
		return pkgerrors.Wrap(err, "persisting token")
	}
	if err := s.storage.Set(persistence.KeyUser, data); err != nil {
		s.mu.Unlock()
		return pkgerrors.Wrap(err, "persisting identity")
	}
	s.token = user.Token
	s.user = user
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetUser replaces the identity fields while keeping the current token,
// used after profile updates and follow/unfollow responses.
func (s *Store) SetUser(user entities.User) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return pkgerrors.NewInternalError("no authenticated session to update")
	}
	updated := &entities.AuthenticatedUser{User: user, Token: s.token}

	data, err := json.Marshal(updated)
	if err != nil {
		s.mu.Unlock()
		return pkgerrors.NewInternalError("encoding identity").WithCause(err)
	}
	if err := s.storage.Set(persistence.KeyUser, data); err != nil {
		s.mu.Unlock()
		return pkgerrors.Wrap(err, "persisting identity")
	}
	s.user = updated
	s.mu.Unlock()

	s.notify()
	return nil
}

// Logout clears the session on explicit user action.
func (s *Store) Logout() {
	s.Clear()
}

// Clear wipes the in-memory and persisted session. Invoked by the transport
// on session expiry; safe to call on an already-empty store.
func (s *Store) Clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	if err := s.storage.Delete(persistence.KeyToken); err != nil {
		s.logger.Warn("clearing persisted token", zap.Error(err))
	}
	if err := s.storage.Delete(persistence.KeyUser); err != nil {
		s.logger.Warn("clearing persisted identity", zap.Error(err))
	}
	s.mu.Unlock()

	s.notify()
}

// Token returns the current session token, or "" when unauthenticated.
// Implements the transport's TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current returns a copy of the authenticated identity, if any.
func (s *Store) Current() (entities.AuthenticatedUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return entities.AuthenticatedUser{}, false
	}
	return *s.user, true
}

// Loading reports whether hydration has not yet settled.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// TokenExpiresAt reads the expiry claim from the session token without
// verifying the signature (the client holds no signing secret). The second
// return is false when no token or no expiry claim is present.
func (s *Store) TokenExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners run after every state change, outside the lock.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	s.listenerSeq++
	id := s.listenerSeq
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
