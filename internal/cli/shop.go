package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/app/shop"
	"github.com/Puneet-Ratnu/murim/internal/daemon"
)

func init() {
	shopFoodCmd.Flags().Int64Var(&shopFoodCost, "cost", shop.SpiritBerryCost, "Food tier to buy (100 or 300)")
	shopAccessoryCmd.Flags().Int64Var(&shopAccessoryCost, "cost", 500, "Accessory price in spendable XP")
	shopCmd.AddCommand(shopPotionCmd)
	shopCmd.AddCommand(shopFoodCmd)
	shopCmd.AddCommand(shopAccessoryCmd)
	rootCmd.AddCommand(shopCmd)
}

var (
	shopFoodCost      int64
	shopAccessoryCost int64
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Buy potions, food, and accessories",
}

var shopPotionCmd = &cobra.Command{
	Use:   "potion",
	Short: "Buy a Minor XP Potion (50 gold, 2x XP for 10 minutes)",
	RunE:  runShopPotion,
}

func runShopPotion(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := shop.MinorXPPotion()
	if err := d.Shop.BuyPotion(p, time.Now()); err != nil {
		return err
	}
	fmt.Printf("%s consumed. %gx XP until %s\n",
		p.Name, p.Multiplier, time.Now().Add(p.Duration).Format("15:04"))
	return nil
}

var shopFoodCmd = &cobra.Command{
	Use:   "food",
	Short: "Buy pet food with spendable XP",
	RunE:  runShopFood,
}

func runShopFood(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Shop.BuyFood(shopFoodCost); err != nil {
		return err
	}
	fmt.Println("Your companion eats happily.")
	return nil
}

var shopAccessoryCmd = &cobra.Command{
	Use:   "accessory <name>",
	Short: "Buy an accessory for the active companion",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopAccessory,
}

func runShopAccessory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Shop.BuyAccessory(args[0], shopAccessoryCost); err != nil {
		return err
	}
	fmt.Printf("Bought %s.\n", args[0])
	return nil
}
