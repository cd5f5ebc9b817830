package entities

import "time"

// FactCheckStance is the stance of the fact-check annotation on a post.
type FactCheckStance string

const (
	StanceSupport FactCheckStance = "support"
	StanceNeutral FactCheckStance = "neutral"
	StanceOppose  FactCheckStance = "oppose"
)

// EmotionScore is a single scored emotion label.
type EmotionScore struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// Toxicity holds the toxicity detection result and per-category scores.
type Toxicity struct {
	Detected bool               `json:"detected"`
	Details  map[string]float64 `json:"details"`
}

// AIAnalysis is the derived-intelligence block attached to a post. The
// client consumes it as opaque annotated data; it is never computed locally.
type AIAnalysis struct {
	Sentiment string          `json:"sentiment"`
	Emotions  []EmotionScore  `json:"emotions"`
	Toxicity  Toxicity        `json:"toxicity"`
	Topics    []string        `json:"topics"`
	Summary   string          `json:"summary"`
	Category  string          `json:"category"`
	FactCheck FactCheckStance `json:"factCheck,omitempty"`
}

// Comment is a child of exactly one post; ownership is by containment.
type Comment struct {
	ID        string    `json:"_id"`
	User      User      `json:"user"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a single thought with its denormalized owner, liker set, ordered
// comments and AI annotations.
type Post struct {
	ID             string      `json:"_id"`
	User           User        `json:"user"`
	Content        string      `json:"content"`
	Image          string      `json:"image,omitempty"`
	Likes          []string    `json:"likes"`
	Comments       []Comment   `json:"comments"`
	AIAnalysis     *AIAnalysis `json:"aiAnalysis,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	RelevanceScore float64     `json:"relevanceScore,omitempty"`
}

// TrendingTopic is one entry of the trending-topics ranking.
type TrendingTopic struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// LikeCount returns the size of the liker set.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// LikedBy reports liker-set membership. "Is liked" is always a membership
// test, never a cached boolean.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// AddLike inserts userID into the liker set. The set never contains
// duplicates, so a repeated add is a no-op.
func (p *Post) AddLike(userID string) {
	if p.LikedBy(userID) {
		return
	}
	p.Likes = append(p.Likes, userID)
}

// RemoveLike deletes userID from the liker set; absent ids are a no-op.
func (p *Post) RemoveLike(userID string) {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return
		}
	}
}

// AppendComment appends a comment, preserving server insertion order.
func (p *Post) AppendComment(c Comment) {
	p.Comments = append(p.Comments, c)
}
