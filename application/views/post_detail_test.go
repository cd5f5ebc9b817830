package views

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sayitloud/domain/entities"
)

func TestPostDetailLoadAndComments(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts/p1", r.URL.Path)
		post := feedPost("p1", "u2", "the post")
		post.Comments = []entities.Comment{
			{ID: "c1", Text: "first", User: entities.User{ID: "u3", Username: "carol"}},
		}
		json.NewEncoder(w).Encode(post)
	})
	env.login(t, "u1", "alice")

	view := NewPostDetailView(env.deps, "p1")
	require.NoError(t, view.Load(context.Background()))

	post, ok := view.Post()
	require.True(t, ok)
	assert.Equal(t, "the post", post.Content)

	comments := view.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].ID)
}

func TestAddCommentAppendsWithIdentity(t *testing.T) {
	var commentBody []byte
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts/p1":
			json.NewEncoder(w).Encode(feedPost("p1", "u2", "the post"))
		case "/posts/p1/comment":
			commentBody, _ = io.ReadAll(r.Body)
			// the server response carries no embedded author
			mustJSON(t, w, `{"_id":"c1","text":"nice"}`)
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})
	env.login(t, "u1", "alice")

	view := NewPostDetailView(env.deps, "p1")
	require.NoError(t, view.Load(context.Background()))

	comment, err := view.AddComment(context.Background(), "nice", nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"text":"nice"}`, string(commentBody))
	assert.Equal(t, "alice", comment.User.Username)

	comments := view.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Text)
	assert.Equal(t, "u1", comments[0].User.ID)
}

func TestAddCommentFailureLeavesThreadUntouched(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/posts/p1" {
			json.NewEncoder(w).Encode(feedPost("p1", "u2", "the post"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"comment rejected"}`))
	})
	env.login(t, "u1", "alice")

	view := NewPostDetailView(env.deps, "p1")
	require.NoError(t, view.Load(context.Background()))

	_, err := view.AddComment(context.Background(), "nice", nil)
	require.Error(t, err)
	assert.Empty(t, view.Comments())
}

func TestPostDetailLikeSharedWithOtherViews(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts/p1":
			json.NewEncoder(w).Encode(feedPost("p1", "u2", "the post"))
		case "/posts/feed":
			json.NewEncoder(w).Encode([]entities.Post{feedPost("p1", "u2", "the post")})
		case "/posts/p1/like":
			mustJSON(t, w, `{"_id":"p1"}`)
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})
	env.login(t, "u1", "alice")

	feed := NewFeedView(env.deps, env.analysis)
	require.NoError(t, feed.Load(context.Background()))

	detail := NewPostDetailView(env.deps, "p1")
	require.NoError(t, detail.Load(context.Background()))

	_, err := detail.ToggleLike(context.Background())
	require.NoError(t, err)

	// both views read the same entity
	assert.True(t, feed.Posts()[0].LikedBy("u1"))
	post, _ := detail.Post()
	assert.True(t, post.LikedBy("u1"))
}
