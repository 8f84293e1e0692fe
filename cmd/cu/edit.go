package main

import (
	"github.com/spf13/cobra"

	"github.com/baiirun/cu/internal/clickup"
	"github.com/baiirun/cu/internal/commands"
	"github.com/baiirun/cu/internal/model"
	"github.com/baiirun/cu/internal/output"
)

var (
	flagTaskName    string
	flagDescription string
	flagPriority    string
	flagDueDate     string
	flagAssignee    string
	flagCreateList  string
	flagParent      string
	flagTags        string
	flagMessage     string
	flagAssignTo    string
	flagAssignRem   string
)

// taskRef is the short JSON shape printed after a write.
type taskRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// changed returns a pointer to val when the flag was given on the command
// line, so an explicit empty value can be told apart from no value.
func changed(cmd *cobra.Command, name string, val string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &val
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commands.UpdateOptions{
			Name:        changed(cmd, "name", flagTaskName),
			Description: changed(cmd, "description", flagDescription),
			Status:      changed(cmd, "status", flagStatus),
			Priority:    changed(cmd, "priority", flagPriority),
			DueDate:     changed(cmd, "due-date", flagDueDate),
			Assignee:    changed(cmd, "assignee", flagAssignee),
		}
		if _, err := commands.BuildUpdatePayload(opts); err != nil {
			return err
		}

		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		task, err := h.Update(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return printJSON(cmd, taskRef{ID: task.ID, Name: task.Name})
		}
		writeLine(cmd, output.UpdateConfirmation(task.ID, task.Name))
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := commands.CreateOptions{
			List:        flagCreateList,
			Name:        flagTaskName,
			Description: flagDescription,
			Parent:      flagParent,
			Status:      flagStatus,
			Priority:    flagPriority,
			DueDate:     flagDueDate,
			Assignee:    flagAssignee,
			Tags:        flagTags,
		}
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		task, err := h.Create(cmd.Context(), opts)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return printJSON(cmd, taskRef{ID: task.ID, Name: task.Name, URL: task.URL})
		}
		writeLine(cmd, output.CreateConfirmation(task.ID, task.Name, task.URL))
		return nil
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment <id>",
	Short: "Post a comment on a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		id, err := h.Comment(cmd.Context(), args[0], flagMessage)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return printJSON(cmd, struct {
				ID string `json:"id"`
			}{id})
		}
		writeLine(cmd, output.CommentConfirmation(id))
		return nil
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments <id>",
	Short: "List comments on a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		comments, err := h.Comments(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return printJSON(cmd, comments)
		}
		writeLine(cmd, output.CommentsMarkdown(comments))
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:   "activity <id>",
	Short: "Show a task with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		task, comments, err := h.Activity(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		switch outputFormat() {
		case output.FormatJSON:
			return printJSON(cmd, struct {
				Task     clickup.Task           `json:"task"`
				Comments []model.CommentSummary `json:"comments"`
			}{task, comments})
		case output.FormatMarkdown:
			writeLine(cmd, output.TaskDetailMarkdown(task))
		default:
			writeLine(cmd, output.TaskDetail(task))
		}
		writeLine(cmd, "\n## Comments\n\n"+output.CommentsMarkdown(comments))
		return nil
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <id>",
	Short: "Add or remove an assignee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagAssignTo == "" && flagAssignRem == "" {
			return commands.ErrNoAssignChange
		}
		h, err := loadHandlers(cmd)
		if err != nil {
			return err
		}
		task, err := h.Assign(cmd.Context(), args[0], flagAssignTo, flagAssignRem)
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return printJSON(cmd, taskRef{ID: task.ID, Name: task.Name})
		}
		writeLine(cmd, output.AssignConfirmation(args[0], flagAssignTo, flagAssignRem))
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&flagTaskName, "name", "n", "", "New task name")
	updateCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "New description (empty string clears it)")
	updateCmd.Flags().StringVarP(&flagStatus, "status", "s", "", "New status (fuzzy matched)")
	updateCmd.Flags().StringVar(&flagPriority, "priority", "", "urgent, high, normal, low or 1-4")
	updateCmd.Flags().StringVar(&flagDueDate, "due-date", "", "Due date as YYYY-MM-DD")
	updateCmd.Flags().StringVar(&flagAssignee, "assignee", "", "Add an assignee by user ID")

	createCmd.Flags().StringVarP(&flagTaskName, "name", "n", "", "Task name")
	createCmd.Flags().StringVarP(&flagCreateList, "list", "l", "", "List ID")
	createCmd.Flags().StringVarP(&flagParent, "parent", "p", "", "Parent task ID")
	createCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "Task description")
	createCmd.Flags().StringVarP(&flagStatus, "status", "s", "", "Initial status")
	createCmd.Flags().StringVar(&flagPriority, "priority", "", "urgent, high, normal, low or 1-4")
	createCmd.Flags().StringVar(&flagDueDate, "due-date", "", "Due date as YYYY-MM-DD")
	createCmd.Flags().StringVar(&flagAssignee, "assignee", "", "Assignee user ID")
	createCmd.Flags().StringVar(&flagTags, "tags", "", "Comma separated tags")
	_ = createCmd.MarkFlagRequired("name")

	commentCmd.Flags().StringVarP(&flagMessage, "message", "m", "", "Comment text")
	_ = commentCmd.MarkFlagRequired("message")

	assignCmd.Flags().StringVar(&flagAssignTo, "to", "", `User ID or "me" to add`)
	assignCmd.Flags().StringVar(&flagAssignRem, "remove", "", `User ID or "me" to remove`)

	addJSONFlag(updateCmd, createCmd, commentCmd, commentsCmd, activityCmd, assignCmd)

	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(assignCmd)
}
