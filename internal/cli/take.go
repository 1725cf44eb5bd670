package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"quiztaker/internal/backend"
	"quiztaker/internal/config"
	"quiztaker/internal/infra/memory"
	"quiztaker/internal/notify"
	"quiztaker/internal/session"
	"quiztaker/internal/transport/term"

	"github.com/spf13/cobra"
)

// NewTakeCmd builds the CLI subcommand that runs one quiz attempt.
func NewTakeCmd(configPath, serverURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "take <quizID>",
		Short: "Take a quiz interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quizID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("quiz id must be an integer, got %q", args[0])
			}

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
			quizzes := memory.NewQuizCache(client, 10*time.Minute)
			board := notify.NewBoard(config.TTLDuration(cfg.Notices.TTL, 3*time.Second))

			controller := session.NewController(quizzes, client, board, session.Config{
				DurationSeconds: cfg.Session.DurationSeconds,
				WarnAtSeconds:   cfg.Session.WarnAtSeconds,
			})
			sess, err := controller.Start(cmd.Context(), quizID)
			if err != nil {
				for _, notice := range board.Active() {
					fmt.Fprintf(cmd.ErrOrStderr(), "! %s\n", notice.Text)
				}
				return err
			}

			ui := term.NewUI(os.Stdin, cmd.OutOrStdout(), board, config.TTLDuration(cfg.Notices.CueTTL, time.Second))
			return ui.Run(cmd.Context(), sess)
		},
	}
}
