package di

import (
	"go.uber.org/zap"

	"sayitloud/application/analysis"
	"sayitloud/application/api"
	"sayitloud/application/optimistic"
	"sayitloud/application/session"
	"sayitloud/application/store"
	"sayitloud/application/views"
	"sayitloud/infrastructure/config"
	"sayitloud/infrastructure/persistence"
	"sayitloud/infrastructure/transport"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Storage   persistence.Storage
	Session   *session.Store
	Transport *transport.Client
	API       *api.Client
	Store     *store.Store
	Runner    *optimistic.Runner
	Analysis  *analysis.Trigger
	ViewDeps  views.Deps
}

// FeedView constructs a fresh feed view over the shared store.
func (c *Container) FeedView() *views.FeedView {
	return views.NewFeedView(c.ViewDeps, c.Analysis)
}

// ExploreView constructs a fresh explore view over the shared store.
func (c *Container) ExploreView() *views.ExploreView {
	return views.NewExploreView(c.ViewDeps)
}

// ProfileView constructs a fresh profile view for one user.
func (c *Container) ProfileView(userID string) *views.ProfileView {
	return views.NewProfileView(c.ViewDeps, userID)
}

// PostDetailView constructs a fresh detail view for one post.
func (c *Container) PostDetailView(postID string) *views.PostDetailView {
	return views.NewPostDetailView(c.ViewDeps, postID)
}

// NotificationsView constructs a fresh notifications view.
func (c *Container) NotificationsView() *views.NotificationsView {
	return views.NewNotificationsView(c.ViewDeps)
}

// Close releases background resources held by the container.
func (c *Container) Close() {
	c.Analysis.Close()
	_ = c.Logger.Sync()
}
