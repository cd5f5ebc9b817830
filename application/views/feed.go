package views

import (
	"context"

	"sayitloud/application/analysis"
	"sayitloud/application/api"
	"sayitloud/application/optimistic"
	"sayitloud/application/store"
	"sayitloud/domain/entities"
)

// FeedView is the personalized home timeline: one full fetch on mount, then
// optimistic likes and deletes, plus non-optimistic post creation that
// prepends the confirmed post with the locally-known identity attached.
type FeedView struct {
	base
	analysis *analysis.Trigger
}

// NewFeedView creates the feed view.
func NewFeedView(deps Deps, trigger *analysis.Trigger) *FeedView {
	return &FeedView{base: newBase(deps), analysis: trigger}
}

// Load performs the single full-collection fetch for this view.
func (v *FeedView) Load(ctx context.Context) error {
	posts, err := v.deps.API.Feed(ctx)
	v.settle()
	if err != nil {
		return err
	}
	if v.isClosed() {
		return nil
	}
	v.deps.Store.SetPosts(store.ViewFeed, posts)
	return nil
}

// Posts returns the feed in order.
func (v *FeedView) Posts() []entities.Post {
	return v.deps.Store.Posts(store.ViewFeed)
}

// CreatePost waits for server confirmation (no optimistic apply; a failure
// surfaces inline to the caller), prepends the new post with the local
// identity attached, and fires the detached analysis request.
func (v *FeedView) CreatePost(ctx context.Context, content string, image *api.Upload) (*entities.Post, error) {
	if err := v.ready(); err != nil {
		return nil, err
	}
	user, err := v.currentUser()
	if err != nil {
		return nil, err
	}

	post, err := v.deps.API.CreatePost(ctx, api.CreatePostArgs{Content: content, Image: image})
	if err != nil {
		return nil, err
	}

	// the create response does not reliably embed the owner; attach the
	// identity we already hold instead of waiting for a refetch
	post.User = user.User

	if !v.isClosed() {
		v.deps.Store.PrependPost(store.ViewFeed, *post)
	}

	v.analysis.Request(post.ID)
	return post, nil
}

// ToggleLike flips the current identity's like on a post, optimistically.
func (v *FeedView) ToggleLike(ctx context.Context, postID string) (optimistic.Outcome, error) {
	return v.toggleLike(ctx, postID)
}

// DeletePost removes a post, optimistically, restoring it on failure.
func (v *FeedView) DeletePost(ctx context.Context, postID string) (optimistic.Outcome, error) {
	return v.deletePost(ctx, postID)
}
