package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sayitloud/application/api"
)

var (
	signupUsername string
	signupEmail    string
	signupPassword string

	loginEmail    string
	loginPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		user, err := c.API.Signup(cmd.Context(), api.SignupArgs{
			Username: signupUsername,
			Email:    signupEmail,
			Password: signupPassword,
		})
		if err != nil {
			return err
		}
		if err := c.Session.Login(user); err != nil {
			return err
		}
		fmt.Printf("welcome, %s\n", user.Username)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		user, err := c.API.Login(cmd.Context(), api.LoginArgs{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			return err
		}
		if err := c.Session.Login(user); err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		c.Session.Logout()
		fmt.Println("logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		user, ok := c.Session.Current()
		if !ok {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		fmt.Printf("followers: %d, following: %d\n", len(user.Followers), len(user.Following))
		if expiry, ok := c.Session.TokenExpiresAt(); ok {
			fmt.Printf("session valid until %s\n", expiry.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var searchUsersCmd = &cobra.Command{
	Use:   "search <username-prefix>",
	Short: "Search users by username prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		users, err := c.API.SearchUsers(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%s  %s\n", u.ID, u.Username)
		}
		return nil
	},
}

var suggestedCmd = &cobra.Command{
	Use:   "suggested",
	Short: "Show suggested users to follow",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		users, err := c.API.SuggestedUsers(cmd.Context())
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%s  %s (%d followers)\n", u.ID, u.Username, len(u.Followers))
		}
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Follow or unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.ProfileView(args[0])
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		wasFollowing := view.IsFollowing()
		if _, err := view.ToggleFollow(cmd.Context()); err != nil {
			return err
		}
		if wasFollowing {
			fmt.Println("unfollowed")
		} else {
			fmt.Println("followed")
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <user-id>",
	Short: "Show a user's profile and posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		userID := ""
		if len(args) > 0 {
			userID = args[0]
		} else if user, ok := c.Session.Current(); ok {
			userID = user.ID
		} else {
			return fmt.Errorf("no user id given and not logged in")
		}

		view := c.ProfileView(userID)
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		if profile, ok := view.Profile(); ok {
			fmt.Printf("%s (%d followers, %d following)\n\n",
				profile.Username, len(profile.Followers), len(profile.Following))
		}
		printPosts(view.Posts())
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&signupUsername, "username", "", "username")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "email address")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "password")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd,
		searchUsersCmd, suggestedCmd, followCmd, profileCmd)
}
