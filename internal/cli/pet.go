package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
	"github.com/Puneet-Ratnu/murim/internal/domain"
)

func init() {
	petAdoptCmd.Flags().StringVar(&petSpecies, "species", "Phoenix", "Pet species")
	petCmd.AddCommand(petAdoptCmd)
	petCmd.AddCommand(petListCmd)
	petCmd.AddCommand(petActivateCmd)
	petCmd.AddCommand(petFeedCmd)
	rootCmd.AddCommand(petCmd)
}

var petSpecies string

var petCmd = &cobra.Command{
	Use:   "pet",
	Short: "Manage companions",
}

var petAdoptCmd = &cobra.Command{
	Use:   "adopt <name>",
	Short: "Adopt a new companion egg",
	Args:  cobra.ExactArgs(1),
	RunE:  runPetAdopt,
}

func runPetAdopt(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.Pets.Adopt(args[0], domain.PetSpecies(petSpecies), time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Adopted %s the %s (id=%s)\n", p.Name, p.Species, p.ID)
	return nil
}

var petListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List companions",
	RunE:    runPetList,
}

func runPetList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	list, err := d.Pets.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No companions yet. Run 'murim pet adopt <name>' to hatch one.")
		return nil
	}

	active, err := d.Pets.Active()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSPECIES\tSTAGE\tLEVEL\tXP")
	for _, p := range list {
		mark := ""
		if active != nil && active.ID == p.ID {
			mark = " *"
		}
		fmt.Fprintf(w, "%s\t%s%s\t%s\t%s\t%d\t%d/%d\n",
			p.ID[:8], p.Name, mark, p.Species, p.Stage, p.Level, p.XP, p.MaxXP)
	}
	return w.Flush()
}

var petActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Make a companion active",
	Args:  cobra.ExactArgs(1),
	RunE:  runPetActivate,
}

func runPetActivate(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Pets.SetActive(args[0]); err != nil {
		return err
	}
	fmt.Println("Active companion set.")
	return nil
}

var petFeedCmd = &cobra.Command{
	Use:   "feed <id> <xp>",
	Short: "Feed XP to a companion",
	Args:  cobra.ExactArgs(2),
	RunE:  runPetFeed,
}

func runPetFeed(cmd *cobra.Command, args []string) error {
	xp, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("xp must be a number: %w", err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.Pets.Feed(args[0], xp)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now level %d (%s), %d/%d XP\n", p.Name, p.Level, p.Stage, p.XP, p.MaxXP)
	return nil
}
