package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Puneet-Ratnu/murim/internal/daemon"
	"github.com/Puneet-Ratnu/murim/internal/domain"
)

func init() {
	moodCmd.Flags().StringVar(&moodKind, "kind", "CLOCK_IN", "CLOCK_IN or CLOCK_OUT")
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(storyCmd)
}

var moodKind string

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Talk to your mentor",
	Args:  cobra.ExactArgs(1),
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	reply, err := d.Mentor.Chat(context.Background(), args[0], time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("[%s] %s\n", d.Mentor.Persona(), reply)
	return nil
}

var moodCmd = &cobra.Command{
	Use:   "mood <mood>",
	Short: "Clock in or out with a mood (Motivated, Tired, Anxious, Confident, Lost)",
	Args:  cobra.ExactArgs(1),
	RunE:  runMood,
}

func runMood(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	advice, err := d.Mentor.ClockMood(context.Background(), domain.MoodType(args[0]), moodKind, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("[%s] %s\n", d.Mentor.Persona(), advice)
	return nil
}

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Read the next chapter of your journey",
	RunE:  runStory,
}

func runStory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p, err := d.Ledger.Progress()
	if err != nil {
		return err
	}
	ch := d.Narrative.StoryChapter(context.Background(), p.Level, "Outer Disciple")
	fmt.Printf("%s\n\n%s\n", ch.Title, ch.Content)
	return nil
}
