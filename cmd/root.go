package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the teamscribe application
var rootCmd = &cobra.Command{
	Use:   "teamscribe",
	Short: "MCP server for Teams meeting transcripts, calendar and mail",
	Long: `teamscribe is an MCP (Model Context Protocol) server that gives AI
assistants read access to a Microsoft 365 account: Teams meeting
transcripts, the Outlook calendar, and the inbox.

Authentication happens through a browser sign-in on first use; the
resulting tokens are stored locally and refreshed automatically.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "teamscribe version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
