package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reolink-cli/internal/config"
	"reolink-cli/internal/logging"
)

var (
	cfgFile    string
	jsonOutput bool
	logLevel   string
	logFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "reolink-cli",
	Short: "A CLI for the Reolink camera HTTP API",
	Long: `Query and control Reolink IP cameras through the /cgi-bin/api.cgi
command interface: system time, device information, performance and reboot.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		logging.Configure(logLevel, logFile)
		config.InitConfig(cfgFile)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.reolink-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warning, error, fatal")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotated file instead of stderr")
}
