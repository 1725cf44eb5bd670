package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()

	envServer := os.Getenv("QUIZ_SERVER_URL")
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "quiztaker",
		Short: "Terminal client for taking timed quizzes against the quiz API",
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", envServer, "quiz server base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewTakeCmd(&configPath, &serverURL))
	cmd.AddCommand(NewCreateCmd(&configPath, &serverURL))
	cmd.AddCommand(NewLoginCmd(&configPath, &serverURL))
	return cmd
}
