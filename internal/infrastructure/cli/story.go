package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storycast/pkg/domain/backlog"
)

var (
	storyPoints   string
	storyPriority string
	storyAssignee string
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Manage backlog stories",
}

var storyAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a story to the backlog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		points, err := backlog.ParsePoints(storyPoints)
		if err != nil {
			return err
		}
		priority, err := backlog.ParsePriority(storyPriority)
		if err != nil {
			return err
		}

		story, err := services.Stories.AddStory(args[0], points, priority, storyAssignee)
		if err != nil {
			return err
		}

		fmt.Printf("Added story #%d (%s)\n", story.Number, story.ID)
		return nil
	},
}

var storyMoveCmd = &cobra.Command{
	Use:   "move <story-id> <event>",
	Short: "Apply a lifecycle event to a story (ready, hold, start, stop, block, unblock, complete, reopen)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		story, err := services.Stories.TransitionStory(args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Story #%d is now %s\n", story.Number, story.Status.DisplayName())
		return nil
	},
}

var storyAssignCmd = &cobra.Command{
	Use:   "assign <story-id> <developer>",
	Short: "Assign a story to a developer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		story, err := services.Stories.AssignStory(args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Story #%d assigned to %s\n", story.Number, story.Developer())
		return nil
	},
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all backlog stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		services := buildServices()

		stories, err := services.Stories.ListStories()
		if err != nil {
			return err
		}
		if len(stories) == 0 {
			fmt.Println("Backlog is empty.")
			return nil
		}

		for _, s := range stories {
			fmt.Printf("#%-4d [%-13s] %-8s %2s pts  %-40.40s %s\n",
				s.Number, s.Status, s.Priority, s.Points, s.Text, s.Developer())
		}
		return nil
	},
}

func init() {
	storyAddCmd.Flags().StringVar(&storyPoints, "points", "?", "Story points (?, 1, 2, 3, 5, 8, 13, 21)")
	storyAddCmd.Flags().StringVar(&storyPriority, "priority", "none", "Priority (none, low, medium, high, critical)")
	storyAddCmd.Flags().StringVar(&storyAssignee, "assignee", "", "Developer the story is assigned to")

	storyCmd.AddCommand(storyAddCmd)
	storyCmd.AddCommand(storyMoveCmd)
	storyCmd.AddCommand(storyAssignCmd)
	storyCmd.AddCommand(storyListCmd)
	RootCmd.AddCommand(storyCmd)
}
