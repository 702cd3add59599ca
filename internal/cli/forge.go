package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
)

func init() {
	forgeCmd.AddCommand(forgeMaterialsCmd)
	forgeCmd.AddCommand(forgeItemsCmd)
	forgeCmd.AddCommand(forgeCraftCmd)
	forgeCmd.AddCommand(forgeAscendCmd)
	rootCmd.AddCommand(forgeCmd)
}

var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "Craft equipment from study materials",
}

var forgeMaterialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Show the material pool",
	RunE:  runForgeMaterials,
}

func runForgeMaterials(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	materials, err := d.Forge.Materials()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tCOUNT\tSOURCE")
	for _, m := range materials {
		fmt.Fprintf(w, "%s\t%d\t%s\n", m.Name, m.Count, m.Source)
	}
	return w.Flush()
}

var forgeItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Show the crafted inventory",
	RunE:  runForgeItems,
}

func runForgeItems(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	items, err := d.Forge.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("The armory is empty. Run 'murim forge craft' once you have materials.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRARITY\tACQUIRED")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", it.Name, it.Rarity, it.AcquiredAt.Format("2006-01-02"))
	}
	return w.Flush()
}

var forgeCraftCmd = &cobra.Command{
	Use:   "craft",
	Short: "Forge a sword (5 Iron Ingots + 5 Fire Essences)",
	RunE:  runForgeCraft,
}

func runForgeCraft(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	item, err := d.Forge.Forge(time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Forged %s (%s)\n", item.Name, item.Rarity)
	return nil
}

var forgeAscendCmd = &cobra.Command{
	Use:   "ascend",
	Short: "Fuse 50 Human-rarity items into an Epic blade",
	RunE:  runForgeAscend,
}

func runForgeAscend(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	item, err := d.Forge.Ascend(time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Ascension complete: %s (%s)\n", item.Name, item.Rarity)
	return nil
}
