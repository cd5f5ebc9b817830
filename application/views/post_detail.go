package views

import (
	"context"

	"sayitloud/application/api"
	"sayitloud/application/optimistic"
	"sayitloud/application/store"
	"sayitloud/domain/entities"
	pkgerrors "sayitloud/pkg/errors"
)

// PostDetailView shows one post with its comment thread. Comments are not
// applied optimistically: the view waits for server confirmation and then
// appends, surfacing failures inline.
type PostDetailView struct {
	base
	postID string
}

// NewPostDetailView creates a detail view for one post.
func NewPostDetailView(deps Deps, postID string) *PostDetailView {
	return &PostDetailView{base: newBase(deps), postID: postID}
}

// Load fetches the post.
func (v *PostDetailView) Load(ctx context.Context) error {
	post, err := v.deps.API.PostByID(ctx, v.postID)
	v.settle()
	if err != nil {
		return err
	}
	if v.isClosed() {
		return nil
	}
	v.deps.Store.SetPosts(store.ViewDetail, []entities.Post{*post})
	return nil
}

// Post returns the post, if loaded.
func (v *PostDetailView) Post() (entities.Post, bool) {
	return v.deps.Store.Post(v.postID)
}

// Comments returns the post's comments in server insertion order.
func (v *PostDetailView) Comments() []entities.Comment {
	post, ok := v.deps.Store.Post(v.postID)
	if !ok {
		return nil
	}
	return post.Comments
}

// AddComment waits for server confirmation, attaches the locally-known
// identity, and appends to the thread.
func (v *PostDetailView) AddComment(ctx context.Context, text string, image *api.Upload) (*entities.Comment, error) {
	if err := v.ready(); err != nil {
		return nil, err
	}
	user, err := v.currentUser()
	if err != nil {
		return nil, err
	}

	comment, err := v.deps.API.CommentOnPost(ctx, v.postID, api.CommentArgs{Text: text, Image: image})
	if err != nil {
		return nil, err
	}

	// the comment response does not reliably embed its author
	comment.User = user.User

	if !v.isClosed() {
		if !v.deps.Store.AppendComment(v.postID, *comment) {
			return comment, pkgerrors.NewNotFoundError("post")
		}
	}
	return comment, nil
}

// ToggleLike flips the current identity's like on the post, optimistically.
func (v *PostDetailView) ToggleLike(ctx context.Context) (optimistic.Outcome, error) {
	return v.toggleLike(ctx, v.postID)
}

// Delete removes the post, optimistically, restoring it on failure.
func (v *PostDetailView) Delete(ctx context.Context) (optimistic.Outcome, error) {
	return v.deletePost(ctx, v.postID)
}
