package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careerscope/careerscope/internal/answer"
)

var askHeuristic bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question about the dataset",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askHeuristic, "heuristic", false, "skip the model and answer deterministically")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := slog.Default()

	a, err := setup(ctx, logger)
	if err != nil {
		return err
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	mode := a.mode
	if askHeuristic {
		mode = answer.ModeHeuristicOnly
	}

	res := a.composer.Answer(ctx, question, mode)
	fmt.Println(res.Text)
	return nil
}
