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
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sessionCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP, currencies, and streak",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.Ledger.Progress()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Level\t%d / %d\n", p.Level, domain.MaxLevel)
	fmt.Fprintf(w, "XP\t%d / %d\n", p.XP, int64(p.Level)*domain.XPPerLevel)
	fmt.Fprintf(w, "Spendable XP\t%d\n", p.SpendableXP)
	fmt.Fprintf(w, "Gold\t%d\n", p.Gold)
	fmt.Fprintf(w, "Streak\t%d days\n", p.StreakDays)
	fmt.Fprintf(w, "Tasks\t%d total, %d today, %d this week\n", p.TotalTasks, p.DailyTasks, p.WeeklyTasks)
	if len(p.Mastered) > 0 {
		fmt.Fprintf(w, "Mastered\t%v\n", p.Mastered)
	}
	return w.Flush()
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record today's study session (advances the streak)",
	RunE:  runSession,
}

func runSession(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	streak, err := d.Streak.RecordSession(time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Session recorded. Streak: %d days\n", streak)
	return nil
}
