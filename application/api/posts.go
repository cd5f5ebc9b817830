package api

import (
	"context"
	"net/http"
	"net/url"

	"sayitloud/domain/entities"
	"sayitloud/infrastructure/transport"
)

// Feed fetches the personalized feed. GET /posts/feed
func (c *Client) Feed(ctx context.Context) ([]entities.Post, error) {
	return do[[]entities.Post](ctx, c, http.MethodGet, "/posts/feed", nil, transport.EncodingJSON)
}

// AllPosts fetches every post. GET /posts
func (c *Client) AllPosts(ctx context.Context) ([]entities.Post, error) {
	return do[[]entities.Post](ctx, c, http.MethodGet, "/posts", nil, transport.EncodingJSON)
}

// PostByID fetches a single post. GET /posts/:id
func (c *Client) PostByID(ctx context.Context, postID string) (*entities.Post, error) {
	if err := requireID("post id", postID); err != nil {
		return nil, err
	}
	return do[*entities.Post](ctx, c, http.MethodGet, "/posts/"+url.PathEscape(postID), nil, transport.EncodingJSON)
}

// CreatePost creates a post. Text-only posts are sent as JSON; an attached
// image switches the call to multipart. POST /posts
func (c *Client) CreatePost(ctx context.Context, args CreatePostArgs) (*entities.Post, error) {
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	if args.Image == nil {
		return do[*entities.Post](ctx, c, http.MethodPost, "/posts", args, transport.EncodingJSON)
	}
	if err := args.Image.validate(); err != nil {
		return nil, err
	}
	body := transport.NewMultipartBody(map[string]string{"content": args.Content}).
		WithFile("image", args.Image.FileName, args.Image.ContentType, args.Image.Reader)
	return do[*entities.Post](ctx, c, http.MethodPost, "/posts", body, transport.EncodingMultipart)
}

// DeletePost deletes a post. DELETE /posts/:id
func (c *Client) DeletePost(ctx context.Context, postID string) (MessageResult, error) {
	if err := requireID("post id", postID); err != nil {
		return MessageResult{}, err
	}
	return do[MessageResult](ctx, c, http.MethodDelete, "/posts/"+url.PathEscape(postID), nil, transport.EncodingJSON)
}

// ToggleLike toggles the caller's like on a post and returns the updated
// post. PUT /posts/:id/like
func (c *Client) ToggleLike(ctx context.Context, postID string) (*entities.Post, error) {
	if err := requireID("post id", postID); err != nil {
		return nil, err
	}
	return do[*entities.Post](ctx, c, http.MethodPut, "/posts/"+url.PathEscape(postID)+"/like", nil, transport.EncodingJSON)
}

// CommentOnPost adds a comment to a post. Text-only comments are sent as
// JSON; an attached image switches the call to multipart.
// POST /posts/:id/comment
func (c *Client) CommentOnPost(ctx context.Context, postID string, args CommentArgs) (*entities.Comment, error) {
	if err := requireID("post id", postID); err != nil {
		return nil, err
	}
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	path := "/posts/" + url.PathEscape(postID) + "/comment"
	if args.Image == nil {
		return do[*entities.Comment](ctx, c, http.MethodPost, path, args, transport.EncodingJSON)
	}
	if err := args.Image.validate(); err != nil {
		return nil, err
	}
	body := transport.NewMultipartBody(map[string]string{"text": args.Text}).
		WithFile("image", args.Image.FileName, args.Image.ContentType, args.Image.Reader)
	return do[*entities.Comment](ctx, c, http.MethodPost, path, body, transport.EncodingMultipart)
}

// SearchPostsByTopic searches posts by AI-assigned topic.
// GET /posts/by-topic?topic=
func (c *Client) SearchPostsByTopic(ctx context.Context, topic string) ([]entities.Post, error) {
	if err := requireID("topic", topic); err != nil {
		return nil, err
	}
	path := "/posts/by-topic?topic=" + url.QueryEscape(topic)
	return do[[]entities.Post](ctx, c, http.MethodGet, path, nil, transport.EncodingJSON)
}

// TrendingTopics fetches the trending-topics ranking.
// GET /posts/trending-topics
func (c *Client) TrendingTopics(ctx context.Context) ([]entities.TrendingTopic, error) {
	return do[[]entities.TrendingTopic](ctx, c, http.MethodGet, "/posts/trending-topics", nil, transport.EncodingJSON)
}

// AnalysisResult acknowledges a requested (re)computation of a post's AI
// annotations. The server does the work asynchronously.
type AnalysisResult struct {
	PostID     string               `json:"postId"`
	Content    string               `json:"content"`
	AIAnalysis *entities.AIAnalysis `json:"aiAnalysis"`
	Message    string               `json:"message"`
}

// AnalyzePost requests (re)computation of a post's AI annotations.
// POST /ai/analyze/:id
func (c *Client) AnalyzePost(ctx context.Context, postID string) (*AnalysisResult, error) {
	if err := requireID("post id", postID); err != nil {
		return nil, err
	}
	return do[*AnalysisResult](ctx, c, http.MethodPost, "/ai/analyze/"+url.PathEscape(postID), nil, transport.EncodingJSON)
}
