package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
)

func init() {
	rootCmd.AddCommand(mainsCmd)
}

var mainsCmd = &cobra.Command{
	Use:   "mains <count>",
	Short: "Log mains answers written today",
	Args:  cobra.ExactArgs(1),
	RunE:  runMains,
}

func runMains(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("count must be a number: %w", err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Dispatcher.MainsLogged(time.Now(), count)
	if err != nil {
		return err
	}
	fmt.Printf("%d answers logged. +%d XP (level %d)\n", count, res.Amount, res.Level)
	return nil
}
