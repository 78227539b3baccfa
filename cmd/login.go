package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reolink-cli/internal/client"
	"reolink-cli/internal/config"
)

var (
	host     string
	user     string
	pass     string
	insecure bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the camera",
	Long: `Logs in with the given credentials and saves the session token locally
for future commands. Tokens expire after the lease time reported by the
camera (usually one hour); run login again when commands report
"please login first".

Example:
  reolink-cli login --host "http://192.168.1.20" --username admin --password pass`,
	RunE: func(cmd *cobra.Command, args []string) error {
		host = strings.TrimRight(host, "/")

		api := client.New(client.ClientConfig{
			BaseURL:  host,
			Username: user,
			Password: pass,
			Insecure: insecure,
		})

		fmt.Fprintf(cmd.OutOrStdout(), "Authenticating against %s as user '%s'...\n", host, user)

		token, err := api.Login()
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		viper.Set(config.KeyBaseURL, host)
		viper.Set(config.KeyInsecure, insecure)

		if err := config.SaveSession(token); err != nil {
			return fmt.Errorf("failed to save configuration file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Session saved. You can now run commands like 'reolink-cli system info'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&host, "host", "", "Camera base URL (e.g. http://192.168.1.20)")
	loginCmd.Flags().StringVarP(&user, "username", "u", "admin", "Camera username")
	loginCmd.Flags().StringVarP(&pass, "password", "p", "", "Camera password")
	loginCmd.Flags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")

	_ = loginCmd.MarkFlagRequired("host")
}
