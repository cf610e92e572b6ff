package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dbDSN      string
	dbDriver   string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Work log – record, search and edit time entries",
	Long: `worklog is a terminal work log. Each entry records an employee, a title,
a date, the minutes spent and free-form notes. Entries are kept in a local
SQLite database (~/.worklog/work_log.db) or, optionally, in PostgreSQL.

Run without a subcommand to open the interactive menu.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.worklog/config.yaml)")
	pf.StringVar(&dbDSN, "db", "", "Database file (sqlite) or connection URL (postgres)")
	pf.StringVar(&dbDriver, "driver", "", "Database driver: sqlite, postgres")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}
