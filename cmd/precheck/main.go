// Command precheck validates submissions from the command line against a
// reference data catalogue, and issues client tokens for the HTTP API.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Exit codes. A submission that validates with problems is not a failure of
// the tool, so it gets its own code.
const (
	exitOK      = 0
	exitError   = 1
	exitInvalid = 2
)

// errInvalid is returned when the submission was checked and found invalid.
var errInvalid = errors.New("submission is invalid")

type rootOptions struct {
	referenceData string
	matchPolicy   string
	timeout       time.Duration
	compact       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "precheck",
		Short: "Validate prosecution submissions before they are accepted",
		Long: `precheck runs the case, defendant and document validation passes locally
and prints the outcome as JSON.

Submissions use the same JSON bodies as the HTTP API. Reference data comes
from the built-in catalogue unless --reference-data names a YAML catalogue.

Exit status is 0 when the submission is valid, 2 when it has problems and
1 when it could not be checked.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.referenceData, "reference-data", "", "Reference data catalogue file (default: built-in catalogue)")
	rootCmd.PersistentFlags().StringVar(&opts.matchPolicy, "match-policy", "", "Default document match policy: base, v2 or pending")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Operation timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.compact, "compact", false, "Print JSON on one line")

	rootCmd.AddCommand(newCaseCmd(opts))
	rootCmd.AddCommand(newDefendantCmd(opts))
	rootCmd.AddCommand(newDocumentCmd(opts))
	rootCmd.AddCommand(newTokenCmd())
	return rootCmd
}

func main() {
	os.Exit(execute(newRootCmd()))
}

func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errInvalid):
		return exitInvalid
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), "precheck:", err)
		return exitError
	}
}
