package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd returns the fsmx root command with validate and run attached.
func RootCmd(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:           cli.Name,
		Short:         "Validate and drive finite-state machine specifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return cli.init()
		},
	}
	cmd.SetIn(cli.In)
	cmd.SetOut(cli.Out)
	cmd.SetErr(cli.ErrOut)

	cmd.AddCommand(ValidateCmd(cli))
	cmd.AddCommand(RunCmd(cli))

	cmd.PersistentFlags().String("initializers", "", "YAML or JSON file with initializers keyed by entity name")

	return cmd
}
