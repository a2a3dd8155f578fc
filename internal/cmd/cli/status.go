package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show buffer and store state",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			used, err := rt.Store().UsedBytes()
			if err != nil {
				return err
			}
			cfg := rt.Config()
			buf := rt.Buffer()

			storageState := "enabled"
			switch {
			case rt.Gate().Tripped():
				storageState = "disabled (gate tripped)"
			case !buf.StorageEnabled():
				storageState = "disabled (instance)"
			}

			rows := [][]string{
				{"Enabled", strconv.FormatBool(cfg.Enabled)},
				{"Entries", strconv.Itoa(buf.Len())},
				{"Max entries", strconv.Itoa(cfg.MaxEntries)},
				{"Max age", cfg.MaxAge().String()},
				{"Stored bytes budget", strconv.Itoa(cfg.MaxStoredBytes)},
				{"Store used bytes", strconv.FormatInt(used, 10)},
				{"Store quota bytes", strconv.FormatInt(cfg.StoreQuotaBytes, 10)},
				{"Storage key", cfg.StorageKey},
				{"Storage", storageState},
			}

			if stdoutIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
				return nil
			}
			for _, row := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", row[0], row[1])
			}
			return nil
		},
	}
}
