package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"sayitloud/domain/entities"
)

// fakeBackend is an in-memory rendition of the remote service, just enough
// surface for end-to-end flows: auth, posts, likes, comments, notifications
// and the analysis acknowledgment.
type fakeBackend struct {
	mu sync.Mutex

	users         map[string]*entities.User
	tokens        map[string]string // token -> user id
	revoked       map[string]bool
	posts         []*entities.Post
	notifications map[string][]*entities.Notification // recipient id -> items

	analyzeCalls int
	nextID       int

	router chi.Router
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		users:         make(map[string]*entities.User),
		tokens:        make(map[string]string),
		revoked:       make(map[string]bool),
		notifications: make(map[string][]*entities.Notification),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", b.handleSignup)
		r.Post("/auth/login", b.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(b.requireAuth)
			r.Get("/posts/feed", b.handleListPosts)
			r.Get("/posts", b.handleListPosts)
			r.Post("/posts", b.handleCreatePost)
			r.Delete("/posts/{postID}", b.handleDeletePost)
			r.Put("/posts/{postID}/like", b.handleToggleLike)
			r.Post("/posts/{postID}/comment", b.handleComment)
			r.Get("/notifications", b.handleNotifications)
			r.Put("/notifications/{notificationID}/read", b.handleMarkRead)
			r.Put("/notifications/read-all", b.handleMarkAllRead)
			r.Post("/ai/analyze/{postID}", b.handleAnalyze)
		})
	})

	b.router = r
	return b
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

// revoke invalidates a token so every later call carrying it gets a 401.
func (b *fakeBackend) revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = true
}

func (b *fakeBackend) analyzeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.analyzeCalls
}

func (b *fakeBackend) id(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s-%d", prefix, b.nextID)
}

func (b *fakeBackend) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		b.mu.Lock()
		userID, ok := b.tokens[token]
		revoked := b.revoked[token]
		b.mu.Unlock()

		if token == "" || !ok || revoked {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		r.Header.Set("X-User-ID", userID)
		next.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) caller(r *http.Request) *entities.User {
	return b.users[r.Header.Get("X-User-ID")]
}

func (b *fakeBackend) handleSignup(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.Username == args.Username {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "username already taken"})
			return
		}
	}

	user := &entities.User{
		ID:        b.id("user"),
		Username:  args.Username,
		Email:     args.Email,
		CreatedAt: time.Now(),
	}
	b.users[user.ID] = user

	token := "token-" + user.ID
	b.tokens[token] = user.ID
	writeJSON(w, http.StatusCreated, entities.AuthenticatedUser{User: *user, Token: token})
}

func (b *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.Email == args.Email {
			token := "token-" + u.ID
			b.tokens[token] = u.ID
			delete(b.revoked, token)
			writeJSON(w, http.StatusOK, entities.AuthenticatedUser{User: *u, Token: token})
			return
		}
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
}

func (b *fakeBackend) handleListPosts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entities.Post, 0, len(b.posts))
	for _, p := range b.posts {
		out = append(out, *p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var args struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil || args.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "content is required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	post := &entities.Post{
		ID:        b.id("post"),
		User:      *b.caller(r),
		Content:   args.Content,
		Likes:     []string{},
		Comments:  []entities.Comment{},
		CreatedAt: time.Now(),
	}
	b.posts = append([]*entities.Post{post}, b.posts...)
	writeJSON(w, http.StatusCreated, *post)
}

func (b *fakeBackend) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, p := range b.posts {
		if p.ID != postID {
			continue
		}
		if p.User.ID != b.caller(r).ID {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "not your post"})
			return
		}
		b.posts = append(b.posts[:i], b.posts[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "post not found"})
}

func (b *fakeBackend) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	b.mu.Lock()
	defer b.mu.Unlock()

	caller := b.caller(r)
	for _, p := range b.posts {
		if p.ID != postID {
			continue
		}
		if p.LikedBy(caller.ID) {
			p.RemoveLike(caller.ID)
		} else {
			p.AddLike(caller.ID)
			b.notifyLocked(p.User.ID, entities.NotificationLike, caller, p)
		}
		writeJSON(w, http.StatusOK, *p)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "post not found"})
}

func (b *fakeBackend) handleComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	var args struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil || args.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "text is required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	caller := b.caller(r)
	for _, p := range b.posts {
		if p.ID != postID {
			continue
		}
		comment := entities.Comment{
			ID:        b.id("comment"),
			User:      *caller,
			Text:      args.Text,
			CreatedAt: time.Now(),
		}
		p.AppendComment(comment)
		b.notifyLocked(p.User.ID, entities.NotificationComment, caller, p)
		writeJSON(w, http.StatusCreated, comment)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "post not found"})
}

func (b *fakeBackend) handleNotifications(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.notifications[b.caller(r).ID]
	out := make([]entities.Notification, 0, len(items))
	for _, n := range items {
		out = append(out, *n)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *fakeBackend) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "notificationID")

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, n := range b.notifications[b.caller(r).ID] {
		if n.ID == notificationID {
			n.Read = true
			writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "notification": *n})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "notification not found"})
}

func (b *fakeBackend) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, n := range b.notifications[b.caller(r).ID] {
		n.Read = true
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "all notifications marked as read"})
}

func (b *fakeBackend) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	b.mu.Lock()
	b.analyzeCalls++
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"postId":  postID,
		"message": "analysis queued",
	})
}

// notifyLocked appends a notification for the recipient. The caller holds
// the backend lock. Self-actions produce no notification, matching the
// remote service.
func (b *fakeBackend) notifyLocked(recipientID string, kind entities.NotificationType, initiator *entities.User, post *entities.Post) {
	if recipientID == initiator.ID {
		return
	}
	verb := "liked"
	if kind == entities.NotificationComment {
		verb = "commented on"
	}
	n := &entities.Notification{
		ID:        b.id("notification"),
		Recipient: recipientID,
		Type:      kind,
		Initiator: initiator.Summary(),
		Post:      &entities.PostRef{ID: post.ID, Content: post.Content},
		Message:   fmt.Sprintf("%s %s your post", initiator.Username, verb),
		CreatedAt: time.Now(),
	}
	b.notifications[recipientID] = append(b.notifications[recipientID], n)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
