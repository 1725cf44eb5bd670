package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"quiztaker/internal/backend"
	"quiztaker/internal/config"

	"github.com/spf13/cobra"
)

// NewLoginCmd builds the CLI subcommand that checks credentials against the
// backend's form login. Failures are reported inline, not as a transient
// notice, and the user simply runs the command again.
func NewLoginCmd(configPath, serverURL *string) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			baseURL := cfg.Server.URL
			if *serverURL != "" {
				baseURL = *serverURL
			}

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "password: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			client, err := backend.New(baseURL, config.TTLDuration(cfg.Server.Timeout, 10*time.Second))
			if err != nil {
				return err
			}
			if err := client.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
