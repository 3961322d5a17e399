package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"github.com/tliron/kutil/util"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("descent.cli")

// main exits through util.Exit so the log backend can flush a buffered
// log file.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		util.Exit(1)
	}
	util.Exit(0)
}

func newRootCmd() *cobra.Command {
	var verbosity int
	var logFile string

	rootCmd := &cobra.Command{
		Use:     "descent",
		Short:   "Parse, check and format sudoers rules",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbosity, logFile)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", os.Getenv("DESCENT_LOG_FILE"), "write logs to this file instead of stderr")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}

func configureLogging(verbosity int, logFile string) {
	var path *string
	if logFile != "" {
		path = &logFile
	}
	commonlog.Configure(verbosity, path)
}
