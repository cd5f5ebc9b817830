package views

import (
	"context"

	"sayitloud/application/optimistic"
	"sayitloud/application/store"
	"sayitloud/domain/entities"
	pkgerrors "sayitloud/pkg/errors"
)

// ProfileView shows one user's identity and posts, with optimistic
// follow/unfollow against the profile's follower list.
type ProfileView struct {
	base
	profileID string
}

// NewProfileView creates a profile view for the given user id.
func NewProfileView(deps Deps, profileID string) *ProfileView {
	return &ProfileView{base: newBase(deps), profileID: profileID}
}

// Load fetches the profile identity and the profile's posts. A revisit or
// identity change constructs a fresh view, which refetches in full.
func (v *ProfileView) Load(ctx context.Context) error {
	user, err := v.deps.API.UserByID(ctx, v.profileID)
	if err != nil {
		v.settle()
		return err
	}

	posts, err := v.deps.API.AllPosts(ctx)
	v.settle()
	if err != nil {
		return err
	}
	if v.isClosed() {
		return nil
	}

	owned := make([]entities.Post, 0)
	for _, p := range posts {
		if p.User.ID == v.profileID {
			owned = append(owned, p)
		}
	}

	v.deps.Store.PutUser(*user)
	v.deps.Store.SetPosts(store.ProfileViewName(v.profileID), owned)
	return nil
}

// Profile returns the profile identity, if loaded.
func (v *ProfileView) Profile() (entities.User, bool) {
	return v.deps.Store.User(v.profileID)
}

// Posts returns the profile's posts in order.
func (v *ProfileView) Posts() []entities.Post {
	return v.deps.Store.Posts(store.ProfileViewName(v.profileID))
}

// IsFollowing reports whether the current identity follows this profile.
func (v *ProfileView) IsFollowing() bool {
	user, ok := v.deps.Session.Current()
	if !ok {
		return false
	}
	return user.IsFollowing(v.profileID)
}

// ToggleFollow optimistically adds or removes the current identity on the
// profile's follower list. On commit the server's returned authenticated
// identity is adopted into the session store (the session is the identity's
// source of truth and follow is one of its sanctioned write events); the
// profile's own optimistic follower list is left as applied.
func (v *ProfileView) ToggleFollow(ctx context.Context) (optimistic.Outcome, error) {
	if err := v.ready(); err != nil {
		return optimistic.OutcomeSkipped, err
	}
	user, err := v.currentUser()
	if err != nil {
		return optimistic.OutcomeSkipped, err
	}
	if user.ID == v.profileID {
		return optimistic.OutcomeSkipped, pkgerrors.NewValidationError("cannot follow yourself")
	}

	follow := !user.IsFollowing(v.profileID)

	var snap store.FollowSnapshot
	applied := false

	return v.deps.Runner.Run(ctx,
		optimistic.Key{EntityID: v.profileID, Action: "follow"},
		optimistic.Mutation{
			Apply: func() {
				snap, applied = v.deps.Store.SetFollow(v.profileID, user.Summary(), follow)
			},
			Call: func(ctx context.Context) error {
				if !applied {
					return pkgerrors.NewNotFoundError("profile")
				}
				var updated *entities.AuthenticatedUser
				var callErr error
				if follow {
					updated, callErr = v.deps.API.Follow(ctx, v.profileID)
				} else {
					updated, callErr = v.deps.API.Unfollow(ctx, v.profileID)
				}
				if callErr != nil {
					return callErr
				}
				return v.deps.Session.SetUser(updated.User)
			},
			Revert: func() {
				if applied {
					v.deps.Store.RestoreFollow(snap)
				}
			},
		},
	)
}

// ToggleLike flips the current identity's like on a post, optimistically.
func (v *ProfileView) ToggleLike(ctx context.Context, postID string) (optimistic.Outcome, error) {
	return v.toggleLike(ctx, postID)
}

// DeletePost removes a post, optimistically, restoring it on failure.
func (v *ProfileView) DeletePost(ctx context.Context, postID string) (optimistic.Outcome, error) {
	return v.deletePost(ctx, postID)
}
