package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/fsmx/internal/core"
	"github.com/comalice/fsmx/loader"
)

// ValidateCmd returns the command that builds and initializes specification files.
func ValidateCmd(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check specifications and their initializers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inits, err := readInitializers(cmd)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				spec, err := loader.LoadFile(path, loader.RequireVersion(cli.Config.StrictVersion))
				if err == nil {
					var m *core.Machine
					if m, err = core.New(spec, inits, core.WithLogger(cli.Logger)); err == nil {
						transitions := 0
						for _, st := range spec.States {
							transitions += len(st.Transitions)
						}
						fmt.Fprintf(cli.Out, "%s: ok (%d states, %d transitions, initial %s)\n",
							path, len(spec.States), transitions, m.CurrentState().Name())
						_ = m.Close()
						continue
					}
				}
				failed++
				fmt.Fprintf(cli.Out, "%s: %v\n", path, err)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d specifications are invalid", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}
