package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lkpd/internal/prompt"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the instruction that would be sent to the AI (no network)",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompt.Build(req))
		return nil
	},
}

func init() {
	addRequestFlags(promptCmd)
}
