package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/app/revision"
	"github.com/Puneet-Ratnu/murim/internal/daemon"
)

func init() {
	reviseCmd.AddCommand(reviseDueCmd)
	reviseCmd.AddCommand(reviseCheckCmd)
	rootCmd.AddCommand(reviseCmd)
}

var reviseCmd = &cobra.Command{
	Use:   "revise",
	Short: "Spaced-repetition revision",
}

var reviseDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List tasks due for revision",
	RunE:  runReviseDue,
}

func runReviseDue(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	due, err := d.Revision.Due(time.Now())
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Println("Nothing due. Your memory palace holds.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tREVISIONS\tDUE SINCE")
	for _, t := range due {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			t.ID[:8], t.Title, len(t.Revisions),
			revision.DueDate(t).Format("2006-01-02"))
	}
	return w.Flush()
}

var reviseCheckCmd = &cobra.Command{
	Use:   "checkin <id>",
	Short: "Check in a revision and draw the lottery",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviseCheck,
}

func runReviseCheck(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	id, err := resolveTaskID(d, args[0])
	if err != nil {
		return err
	}
	reward, err := d.Revision.CheckIn(id, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Revision recorded. You found: %s (%s %d)\n", reward.Label, reward.Kind, reward.Amount)
	return nil
}
