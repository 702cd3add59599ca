package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
	"github.com/Puneet-Ratnu/murim/internal/domain"
)

func init() {
	hobbyCmd.Flags().StringVar(&hobbyType, "type", "Language", "Hobby type (Language, Painting, Poetry, Manhwa)")
	hobbyCmd.Flags().StringVar(&hobbyContent, "note", "", "Optional note")
	rootCmd.AddCommand(hobbyCmd)
}

var (
	hobbyType    string
	hobbyContent string
)

var hobbyCmd = &cobra.Command{
	Use:   "hobby <title>",
	Short: "Log a leisure session",
	Args:  cobra.ExactArgs(1),
	RunE:  runHobby,
}

func runHobby(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	res, err := d.Dispatcher.HobbyLogged(domain.HobbyType(hobbyType), args[0], hobbyContent, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Hobby logged. +%d XP\n", res.Amount)
	return nil
}
