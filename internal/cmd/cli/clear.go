package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all retained entries and the durable slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.Buffer().Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return nil
		},
	}
}
