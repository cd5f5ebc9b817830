package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	markReadID  string
	markAllRead bool
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		view := c.NotificationsView()
		defer view.Close()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		if markReadID != "" {
			if _, err := view.MarkRead(cmd.Context(), markReadID); err != nil {
				return err
			}
		}
		if markAllRead {
			if _, err := view.MarkAllRead(cmd.Context()); err != nil {
				return err
			}
		}

		for _, n := range view.Notifications() {
			marker := " "
			if !n.Read {
				marker = "*"
			}
			fmt.Printf("%s %s  [%s] %s %s\n", marker, n.ID, n.Type, n.Initiator.Username, n.Message)
		}
		fmt.Printf("%d unread\n", view.UnreadCount())
		return nil
	},
}

func init() {
	notificationsCmd.Flags().StringVar(&markReadID, "read", "", "mark one notification read")
	notificationsCmd.Flags().BoolVar(&markAllRead, "read-all", false, "mark all notifications read")

	rootCmd.AddCommand(notificationsCmd)
}
