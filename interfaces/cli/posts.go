package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sayitloud/application/api"
	"sayitloud/domain/entities"
)

var (
	postImagePath    string
	commentImagePath string
)

// printPosts renders a post list the way every listing command does.
func printPosts(posts []entities.Post) {
	for _, p := range posts {
		fmt.Printf("%s  @%s  (%d likes, %d comments)\n", p.ID, p.User.Username, p.LikeCount(), len(p.Comments))
		fmt.Printf("    %s\n", p.Content)
		if p.AIAnalysis != nil {
			fmt.Printf("    [%s / %s]\n", p.AIAnalysis.Sentiment, p.AIAnalysis.Category)
		}
	}
}

// openUpload opens a local file as an attachment. The caller keeps the
// file open for the duration of the request.
func openUpload(path string) (*api.Upload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening image: %w", err)
	}
	return &api.Upload{
		FileName:    filepath.Base(path),
		ContentType: "application/octet-stream",
		Reader:      f,
	}, f, nil
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the personalized feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.FeedView()
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}
		printPosts(view.Posts())
		return nil
	},
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Show all posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.ExploreView()
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}
		printPosts(view.Posts())
		return nil
	},
}

var postCmd = &cobra.Command{
	Use:   "post <content>",
	Short: "Create a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.FeedView()
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		var upload *api.Upload
		if postImagePath != "" {
			u, f, err := openUpload(postImagePath)
			if err != nil {
				return err
			}
			defer f.Close()
			upload = u
		}

		post, err := view.CreatePost(cmd.Context(), args[0], upload)
		if err != nil {
			return err
		}
		fmt.Printf("posted %s\n", post.ID)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.PostDetailView(args[0])
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		post, ok := view.Post()
		if !ok {
			return fmt.Errorf("post not found")
		}
		printPosts([]entities.Post{post})
		for _, comment := range view.Comments() {
			fmt.Printf("    @%s: %s\n", comment.User.Username, comment.Text)
		}
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Toggle a like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.PostDetailView(args[0])
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		outcome, err := view.ToggleLike(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(outcome)
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment <post-id> <text>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.PostDetailView(args[0])
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		var upload *api.Upload
		if commentImagePath != "" {
			u, f, err := openUpload(commentImagePath)
			if err != nil {
				return err
			}
			defer f.Close()
			upload = u
		}

		comment, err := view.AddComment(cmd.Context(), args[1], upload)
		if err != nil {
			return err
		}
		fmt.Printf("commented %s\n", comment.ID)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.PostDetailView(args[0])
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		outcome, err := view.Delete(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(outcome)
		return nil
	},
}

var topicsCmd = &cobra.Command{
	Use:   "topics <topic>",
	Short: "Search posts by topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.ExploreView()
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		posts, err := view.SearchByTopic(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printPosts(posts)
		return nil
	},
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show trending topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.ExploreView()
		defer view.Close()
		topics, err := view.Trending(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range topics {
			fmt.Printf("%-24s %d\n", t.Topic, t.Count)
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <post-id>",
	Short: "Request AI analysis of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		c.Analysis.Request(args[0])
		fmt.Println("analysis requested")
		return nil
	},
}

func init() {
	postCmd.Flags().StringVar(&postImagePath, "image", "", "path to an image attachment")
	commentCmd.Flags().StringVar(&commentImagePath, "image", "", "path to an image attachment")

	rootCmd.AddCommand(feedCmd, exploreCmd, postCmd, showCmd, likeCmd,
		commentCmd, deleteCmd, topicsCmd, trendingCmd, analyzeCmd)
}
