package views

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"sayitloud/application/api"
	"sayitloud/application/optimistic"
	"sayitloud/application/session"
	"sayitloud/application/store"
	"sayitloud/domain/entities"
	pkgerrors "sayitloud/pkg/errors"
)

// Deps bundles the collaborators every view shares: the API surface, the
// normalized store, the mutation runner and the session store.
type Deps struct {
	API     *api.Client
	Store   *store.Store
	Runner  *optimistic.Runner
	Session *session.Store
	Logger  *zap.Logger
}

// base carries the lifecycle every page view obeys: exactly one
// full-collection fetch on mount, mutations refused until that fetch
// settles, and no state writes after Close (a fetch completing after its
// view unmounts is discarded).
type base struct {
	deps Deps

	mu     sync.Mutex
	loaded bool
	closed bool
}

func newBase(deps Deps) base {
	return base{deps: deps}
}

// settle marks the initial fetch as completed, success or failure.
func (b *base) settle() {
	b.mu.Lock()
	b.loaded = true
	b.mu.Unlock()
}

// isClosed reports whether the view has unmounted.
func (b *base) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// ready guards mutations: the initial fetch must have settled and the view
// must still be mounted.
func (b *base) ready() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return pkgerrors.NewInternalError("view is closed")
	}
	if !b.loaded {
		return pkgerrors.NewValidationError("view has not finished loading")
	}
	return nil
}

// Close unmounts the view. In-flight fetches run to completion but their
// results are discarded.
func (b *base) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// currentUser returns the authenticated identity or a validation error for
// call sites that require one.
func (b *base) currentUser() (entities.AuthenticatedUser, error) {
	user, ok := b.deps.Session.Current()
	if !ok {
		return entities.AuthenticatedUser{}, pkgerrors.NewValidationError("not authenticated")
	}
	return user, nil
}

// toggleLike runs the optimistic like/unlike protocol for one post. The
// committed optimistic value is final; the server's returned post is not
// reconciled into the store.
func (b *base) toggleLike(ctx context.Context, postID string) (optimistic.Outcome, error) {
	if err := b.ready(); err != nil {
		return optimistic.OutcomeSkipped, err
	}
	user, err := b.currentUser()
	if err != nil {
		return optimistic.OutcomeSkipped, err
	}

	var snap store.LikeSnapshot
	applied := false

	return b.deps.Runner.Run(ctx,
		optimistic.Key{EntityID: postID, Action: "like"},
		optimistic.Mutation{
			Apply: func() {
				snap, applied = b.deps.Store.ToggleLike(postID, user.ID)
			},
			Call: func(ctx context.Context) error {
				if !applied {
					return pkgerrors.NewNotFoundError("post")
				}
				_, err := b.deps.API.ToggleLike(ctx, postID)
				return err
			},
			Revert: func() {
				if applied {
					b.deps.Store.RestoreLike(snap)
				}
			},
		},
	)
}

// deletePost runs the optimistic removal protocol for one post. A failed
// delete restores the post at its original position in every view.
func (b *base) deletePost(ctx context.Context, postID string) (optimistic.Outcome, error) {
	if err := b.ready(); err != nil {
		return optimistic.OutcomeSkipped, err
	}
	user, err := b.currentUser()
	if err != nil {
		return optimistic.OutcomeSkipped, err
	}
	if post, ok := b.deps.Store.Post(postID); !ok {
		return optimistic.OutcomeSkipped, pkgerrors.NewNotFoundError("post")
	} else if post.User.ID != user.ID {
		return optimistic.OutcomeSkipped, pkgerrors.NewValidationError("only the owner can delete a post")
	}

	var snap store.RemovedPost
	applied := false

	return b.deps.Runner.Run(ctx,
		optimistic.Key{EntityID: postID, Action: "delete"},
		optimistic.Mutation{
			Apply: func() {
				snap, applied = b.deps.Store.RemovePost(postID)
			},
			Call: func(ctx context.Context) error {
				if !applied {
					return pkgerrors.NewNotFoundError("post")
				}
				_, err := b.deps.API.DeletePost(ctx, postID)
				return err
			},
			Revert: func() {
				if applied {
					b.deps.Store.RestorePost(snap)
				}
			},
		},
	)
}
