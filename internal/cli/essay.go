package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
)

func init() {
	essayCmd.Flags().IntVar(&essayCount, "count", 1, "Number of essays written")
	essayCmd.Flags().IntVar(&essayMarks, "marks", 0, "Total marks scored")
	rootCmd.AddCommand(essayCmd)
}

var (
	essayCount int
	essayMarks int
)

var essayCmd = &cobra.Command{
	Use:   "essay",
	Short: "Submit Wednesday essays for XP and Fire Essence",
	RunE:  runEssay,
}

func runEssay(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Dispatcher.EssaySubmitted(time.Now(), essayCount, essayMarks)
	if err != nil {
		return err
	}
	fmt.Printf("Essays recorded. +%d XP (level %d)\n", res.Amount, res.Level)
	return nil
}
