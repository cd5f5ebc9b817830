package store

import (
	"sayitloud/domain/entities"
)

// Snapshot types capture the exact pre-mutation values an optimistic apply
// overwrites, making rollback a true inverse of the apply.

// LikeSnapshot is the pre-mutation like state of one post for one user.
type LikeSnapshot struct {
	PostID string
	UserID string
	Liked  bool
}

// ToggleLike flips the user's membership in the post's liker set and
// returns the snapshot needed to revert. Unknown posts return ok=false and
// change nothing.
func (s *Store) ToggleLike(postID, userID string) (LikeSnapshot, bool) {
	s.mu.Lock()
	p, ok := s.posts[postID]
	if !ok {
		s.mu.Unlock()
		return LikeSnapshot{}, false
	}

	snap := LikeSnapshot{PostID: postID, UserID: userID, Liked: p.LikedBy(userID)}
	if snap.Liked {
		p.RemoveLike(userID)
	} else {
		p.AddLike(userID)
	}
	s.mu.Unlock()

	s.notify()
	return snap, true
}

// RestoreLike reverts a like toggle to its snapshot. The membership
// operations are duplicate-safe, so restoring is idempotent.
func (s *Store) RestoreLike(snap LikeSnapshot) {
	s.mu.Lock()
	p, ok := s.posts[snap.PostID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if snap.Liked {
		p.AddLike(snap.UserID)
	} else {
		p.RemoveLike(snap.UserID)
	}
	s.mu.Unlock()

	s.notify()
}

// RemovedPost is the snapshot of an optimistically removed post: the entity
// plus its position in every view that contained it.
type RemovedPost struct {
	Post      entities.Post
	Positions map[ViewName]int
}

// RemovePost deletes the post entity and its id from every view, returning
// the snapshot needed to restore it.
func (s *Store) RemovePost(postID string) (RemovedPost, bool) {
	s.mu.Lock()
	p, ok := s.posts[postID]
	if !ok {
		s.mu.Unlock()
		return RemovedPost{}, false
	}

	snap := RemovedPost{Post: clonePost(p), Positions: make(map[ViewName]int)}
	for view, order := range s.views {
		for i, id := range order {
			if id == postID {
				snap.Positions[view] = i
				s.views[view] = append(order[:i:i], order[i+1:]...)
				break
			}
		}
	}
	delete(s.posts, postID)
	s.mu.Unlock()

	s.notify()
	return snap, true
}

// RestorePost reinserts a removed post at its original position in each
// view it was removed from.
func (s *Store) RestorePost(snap RemovedPost) {
	s.mu.Lock()
	s.upsertPostLocked(snap.Post)
	for view, pos := range snap.Positions {
		order := without(s.views[view], snap.Post.ID)
		if pos > len(order) {
			pos = len(order)
		}
		order = append(order[:pos:pos], append([]string{snap.Post.ID}, order[pos:]...)...)
		s.views[view] = order
	}
	s.mu.Unlock()

	s.notify()
}

// AppendComment appends a server-confirmed comment to a post, preserving
// server insertion order.
func (s *Store) AppendComment(postID string, c entities.Comment) bool {
	s.mu.Lock()
	p, ok := s.posts[postID]
	if !ok {
		s.mu.Unlock()
		return false
	}
	p.AppendComment(c)
	s.mu.Unlock()

	s.notify()
	return true
}

// SetFollowState applies an optimistic follow/unfollow to a profile user's
// follower list, returning the revert snapshot.
type FollowSnapshot struct {
	ProfileID string
	Follower  entities.UserSummary
	Followed  bool
}

// SetFollow adds or removes the follower summary on the profile user and
// returns the snapshot needed to revert.
func (s *Store) SetFollow(profileID string, follower entities.UserSummary, follow bool) (FollowSnapshot, bool) {
	s.mu.Lock()
	u, ok := s.users[profileID]
	if !ok {
		s.mu.Unlock()
		return FollowSnapshot{}, false
	}

	snap := FollowSnapshot{ProfileID: profileID, Follower: follower, Followed: followedBy(u, follower.ID)}
	if follow {
		u.AddFollower(follower)
	} else {
		u.RemoveFollower(follower.ID)
	}
	s.mu.Unlock()

	s.notify()
	return snap, true
}

// RestoreFollow reverts a follow/unfollow to its snapshot.
func (s *Store) RestoreFollow(snap FollowSnapshot) {
	s.mu.Lock()
	u, ok := s.users[snap.ProfileID]
	if !ok {
		s.mu.Unlock()
		return
	}
	if snap.Followed {
		u.AddFollower(snap.Follower)
	} else {
		u.RemoveFollower(snap.Follower.ID)
	}
	s.mu.Unlock()

	s.notify()
}

func followedBy(u *entities.User, followerID string) bool {
	for _, f := range u.Followers {
		if f.ID == followerID {
			return true
		}
	}
	return false
}
