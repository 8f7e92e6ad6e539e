// Command revise is the operator CLI for the review-scheduling engine. It
// works against the YAML file store; production deployments drive the same
// service through their own repositories.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "revise",
		Short:         "Adaptive review scheduling for the Apprendo learning platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")

	rootCommand.AddCommand(newQueueCommand())
	rootCommand.AddCommand(newStatsCommand())
	rootCommand.AddCommand(newRecommendCommand())
	rootCommand.AddCommand(newRecordCommand())
	rootCommand.AddCommand(newPostponeCommand())
	rootCommand.AddCommand(newCancelCommand())

	return rootCommand
}
