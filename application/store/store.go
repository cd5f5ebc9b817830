package store

import (
	"sync"

	"go.uber.org/zap"

	"sayitloud/domain/entities"
)

// ViewName identifies one ordered slice of the normalized store. Every page
// reads through a view; the entities behind the views are shared, so a
// mutation observed in one view is observed by all of them.
type ViewName string

const (
	ViewFeed    ViewName = "feed"
	ViewExplore ViewName = "explore"
	ViewTopic   ViewName = "topic"
	ViewDetail  ViewName = "detail"
)

// ProfileViewName returns the view holding one user's posts.
func ProfileViewName(userID string) ViewName {
	return ViewName("profile:" + userID)
}

// Store is the single shared normalized store: entity-by-id maps for posts,
// users and notifications, plus named ordered views of post ids. It
// replaces the per-page independent collections that allowed the same
// entity to drift between pages.
//
// All optimistic applies and reverts are methods here so rollback is a true
// inverse of the optimistic apply, never a refetch.
type Store struct {
	mu sync.RWMutex

	posts         map[string]*entities.Post
	users         map[string]*entities.User
	notifications map[string]*entities.Notification

	views             map[ViewName][]string
	notificationOrder []string

	listenerSeq int
	listeners   map[int]func()

	logger *zap.Logger
}

// NewStore creates an empty normalized store.
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		posts:         make(map[string]*entities.Post),
		users:         make(map[string]*entities.User),
		notifications: make(map[string]*entities.Notification),
		views:         make(map[ViewName][]string),
		listeners:     make(map[int]func()),
		logger:        logger,
	}
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners run after every mutation, outside the lock.
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

// upsertPostLocked merges a fetched post into the entity map. The caller
// holds the write lock.
func (s *Store) upsertPostLocked(post entities.Post) {
	p := post
	s.posts[p.ID] = &p
	u := p.User
	s.users[u.ID] = &u
}

// SetPosts replaces a view's contents with a freshly fetched collection.
func (s *Store) SetPosts(view ViewName, posts []entities.Post) {
	s.mu.Lock()
	order := make([]string, 0, len(posts))
	for _, p := range posts {
		s.upsertPostLocked(p)
		order = append(order, p.ID)
	}
	s.views[view] = order
	s.mu.Unlock()

	s.notify()
}

// PrependPost inserts a newly created post at the head of a view.
func (s *Store) PrependPost(view ViewName, post entities.Post) {
	s.mu.Lock()
	s.upsertPostLocked(post)
	s.views[view] = append([]string{post.ID}, without(s.views[view], post.ID)...)
	s.mu.Unlock()

	s.notify()
}

// Posts returns copies of a view's posts in order. Ids whose entity has
// been removed are skipped.
func (s *Store) Posts(view ViewName) []entities.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := s.views[view]
	out := make([]entities.Post, 0, len(order))
	for _, id := range order {
		if p, ok := s.posts[id]; ok {
			out = append(out, clonePost(p))
		}
	}
	return out
}

// Post returns a copy of one post by id.
func (s *Store) Post(id string) (entities.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return entities.Post{}, false
	}
	return clonePost(p), true
}

// User returns a copy of one user by id.
func (s *Store) User(id string) (entities.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return entities.User{}, false
	}
	return *u, true
}

// PutUser merges a fetched user into the entity map.
func (s *Store) PutUser(user entities.User) {
	s.mu.Lock()
	u := user
	s.users[u.ID] = &u
	s.mu.Unlock()

	s.notify()
}

func without(order []string, id string) []string {
	out := make([]string, 0, len(order))
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func clonePost(p *entities.Post) entities.Post {
	out := *p
	out.Likes = append([]string(nil), p.Likes...)
	out.Comments = append([]entities.Comment(nil), p.Comments...)
	return out
}
