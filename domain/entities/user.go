package entities

import "time"

// UserSummary is the canonical lightweight reference to a user, used for
// follower/following lists and notification initiators.
type UserSummary struct {
	ID             string `json:"_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Preferences holds the per-user affinity weights computed server-side.
type Preferences struct {
	LikedCategories map[string]float64 `json:"likedCategories"`
	LikedTopics     map[string]float64 `json:"likedTopics"`
}

// User is a user account and its public profile data.
type User struct {
	ID             string        `json:"_id"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	ProfilePicture string        `json:"profilePicture,omitempty"`
	Followers      []UserSummary `json:"followers"`
	Following      []UserSummary `json:"following"`
	CreatedAt      time.Time     `json:"createdAt"`
	Preferences    Preferences   `json:"userPreferences"`
}

// AuthenticatedUser is a User plus the session token issued at signup/login.
// Only the current client ever holds one.
type AuthenticatedUser struct {
	User
	Token string `json:"token"`
}

// Summary reduces a User to its canonical lightweight reference.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// IsFollowing reports whether this user follows the given user id.
func (u *User) IsFollowing(userID string) bool {
	for _, f := range u.Following {
		if f.ID == userID {
			return true
		}
	}
	return false
}

// FollowerCount returns the number of followers.
func (u *User) FollowerCount() int {
	return len(u.Followers)
}

// AddFollower records a follower if not already present.
func (u *User) AddFollower(s UserSummary) {
	for _, f := range u.Followers {
		if f.ID == s.ID {
			return
		}
	}
	u.Followers = append(u.Followers, s)
}

// RemoveFollower removes a follower by id; absent ids are a no-op.
func (u *User) RemoveFollower(userID string) {
	for i, f := range u.Followers {
		if f.ID == userID {
			u.Followers = append(u.Followers[:i], u.Followers[i+1:]...)
			return
		}
	}
}

// AddFollowing records a followed user if not already present.
func (u *User) AddFollowing(s UserSummary) {
	for _, f := range u.Following {
		if f.ID == s.ID {
			return
		}
	}
	u.Following = append(u.Following, s)
}

// RemoveFollowing removes a followed user by id; absent ids are a no-op.
func (u *User) RemoveFollowing(userID string) {
	for i, f := range u.Following {
		if f.ID == userID {
			u.Following = append(u.Following[:i], u.Following[i+1:]...)
			return
		}
	}
}
