package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psukit/diaglog/internal/logbuf"
)

func newIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <message>",
		Short: "Record one diagnostic entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levelName, _ := cmd.Flags().GetString("level")
			category, _ := cmd.Flags().GetString("category")
			dataJSON, _ := cmd.Flags().GetString("data")

			level, err := logbuf.ParseLevel(levelName)
			if err != nil {
				return err
			}

			var data any
			if dataJSON != "" {
				if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
					return fmt.Errorf("invalid --data: %w", err)
				}
			}

			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.Buffer().Ingest(level, category, strings.Join(args, " "), data)
			return nil
		},
	}
	cmd.Flags().String("level", "info", "Entry level: debug|info|warn|error")
	cmd.Flags().String("category", "general", "Free-text source tag")
	cmd.Flags().String("data", "", "Optional JSON payload attached to the entry")
	return cmd
}
