package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const dumpDataPreviewRunes = 60

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "List retained entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			entries := rt.Buffer().Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no entries")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				data := string(e.Data)
				if r := []rune(data); len(r) > dumpDataPreviewRunes {
					data = string(r[:dumpDataPreviewRunes]) + "…"
				}
				rows = append(rows, []string{e.Timestamp, strings.ToUpper(string(e.Level)), e.Category, e.Message, data})
			}

			if stdoutIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Timestamp", "Level", "Category", "Message", "Data"}, rows))
				return nil
			}
			for _, row := range rows {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(row, "\t"))
			}
			return nil
		},
	}
}
