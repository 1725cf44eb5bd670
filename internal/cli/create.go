package cli

import (
	"fmt"
	"time"

	"quiztaker/internal/backend"
	"quiztaker/internal/config"
	"quiztaker/internal/domain"

	"github.com/spf13/cobra"
)

// NewCreateCmd builds the CLI subcommand that authors a quiz through the
// admin endpoint and reports the new quiz id.
func NewCreateCmd(configPath, serverURL *string) *cobra.Command {
	var (
		title         string
		category      int
		difficulty    string
		questionCount int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a quiz via the admin endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			baseURL := cfg.Server.URL
			if *serverURL != "" {
				baseURL = *serverURL
			}

			client, err := backend.New(baseURL, config.TTLDuration(cfg.Server.Timeout, 10*time.Second))
			if err != nil {
				return err
			}
			quizID, err := client.CreateQuiz(cmd.Context(), domain.QuizSpec{
				Title:         title,
				Category:      category,
				Difficulty:    difficulty,
				QuestionCount: questionCount,
			})
			if err != nil {
				return fmt.Errorf("create quiz: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created quiz %d, take it with: quiztaker take %d\n", quizID, quizID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "quiz title")
	cmd.Flags().IntVar(&category, "category", 0, "category id")
	cmd.Flags().StringVar(&difficulty, "difficulty", "easy", "difficulty (easy, medium, hard)")
	cmd.Flags().IntVar(&questionCount, "questions", 10, "number of questions")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
