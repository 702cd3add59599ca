package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
	"github.com/Puneet-Ratnu/murim/internal/domain"
)

func init() {
	taskAddCmd.Flags().StringVar(&taskCategory, "category", "GS", "Task category (GS or Optional)")
	taskAddCmd.Flags().StringVar(&taskSubCategory, "sub", "", "Sub-category (e.g. Polity, History)")
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskUndoCmd)
	taskCmd.AddCommand(taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}

var (
	taskCategory    string
	taskSubCategory string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage study tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a study task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	t, err := d.Tasks.Create(args[0], domain.TaskCategory(taskCategory), taskSubCategory, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Added %q (%s/%s) id=%s\n", t.Title, t.Category, t.SubCategory, t.ID)
	return nil
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List study tasks",
	RunE:    runTaskList,
}

func runTaskList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	list, err := d.Tasks.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No tasks yet. Run 'murim task add <title>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tDONE\tREVISIONS")
	for _, t := range list {
		done := ""
		if t.Completed {
			done = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%d\n",
			t.ID[:8], t.Title, t.Category, t.SubCategory, done, len(t.Revisions))
	}
	return w.Flush()
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Complete a task and collect its rewards",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := resolveTaskID(d, args[0])
	if err != nil {
		return err
	}
	t, err := d.Tasks.Complete(id, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Completed %q\n", t.Title)
	return nil
}

var taskUndoCmd = &cobra.Command{
	Use:   "undo <id>",
	Short: "Mark a completed task as not done (rewards stay paid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUndo,
}

func runTaskUndo(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := resolveTaskID(d, args[0])
	if err != nil {
		return err
	}
	t, err := d.Tasks.Uncomplete(id)
	if err != nil {
		return err
	}
	fmt.Printf("Reopened %q\n", t.Title)
	return nil
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := resolveTaskID(d, args[0])
	if err != nil {
		return err
	}
	if err := d.Tasks.Delete(id); err != nil {
		return err
	}
	fmt.Println("Deleted", id)
	return nil
}
