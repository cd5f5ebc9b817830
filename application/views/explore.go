package views

import (
	"context"

	"sayitloud/application/optimistic"
	"sayitloud/application/store"
	"sayitloud/domain/entities"
	pkgerrors "sayitloud/pkg/errors"
)

// ExploreView is the public firehose plus topic search and trending topics.
type ExploreView struct {
	base
}

// NewExploreView creates the explore view.
func NewExploreView(deps Deps) *ExploreView {
	return &ExploreView{base: newBase(deps)}
}

// Load performs the single full-collection fetch for this view.
func (v *ExploreView) Load(ctx context.Context) error {
	posts, err := v.deps.API.AllPosts(ctx)
	v.settle()
	if err != nil {
		return err
	}
	if v.isClosed() {
		return nil
	}
	v.deps.Store.SetPosts(store.ViewExplore, posts)
	return nil
}

// Posts returns the explore collection in order.
func (v *ExploreView) Posts() []entities.Post {
	return v.deps.Store.Posts(store.ViewExplore)
}

// SearchByTopic replaces the topic view with a fresh full fetch.
func (v *ExploreView) SearchByTopic(ctx context.Context, topic string) ([]entities.Post, error) {
	if err := v.ready(); err != nil {
		return nil, err
	}
	posts, err := v.deps.API.SearchPostsByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	if v.isClosed() {
		return posts, nil
	}
	v.deps.Store.SetPosts(store.ViewTopic, posts)
	return v.deps.Store.Posts(store.ViewTopic), nil
}

// TopicPosts returns the last topic search results.
func (v *ExploreView) TopicPosts() []entities.Post {
	return v.deps.Store.Posts(store.ViewTopic)
}

// Trending fetches the trending-topics ranking. The ranking is transient
// display data, not an entity, so it bypasses the store.
func (v *ExploreView) Trending(ctx context.Context) ([]entities.TrendingTopic, error) {
	if v.isClosed() {
		return nil, pkgerrors.NewInternalError("view is closed")
	}
	return v.deps.API.TrendingTopics(ctx)
}

// ToggleLike flips the current identity's like on a post, optimistically.
func (v *ExploreView) ToggleLike(ctx context.Context, postID string) (optimistic.Outcome, error) {
	return v.toggleLike(ctx, postID)
}

// DeletePost removes a post, optimistically, restoring it on failure.
func (v *ExploreView) DeletePost(ctx context.Context, postID string) (optimistic.Outcome, error) {
	return v.deletePost(ctx, postID)
}
