// Command shortlist ranks applications, validates criteria and checks profile
// completion offline, against the same engine the server uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shortlist",
		Short:         "Offline shortlisting tools",
		Long:          "shortlist runs the criteria validator, the completion evaluator and the ranker over local files.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRankCmd(), newValidateCmd(), newCompletionCmd(), newHashPasswordCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
