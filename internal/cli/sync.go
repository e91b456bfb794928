package cli

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func newSyncCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a one-shot federation sync and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			app, err := buildApp(opts, logger)
			if err != nil {
				return err
			}
			if app.SyncEngine == nil {
				return errors.New("sync requires --federation-url")
			}

			report, runErr := app.SyncEngine.Run(cmd.Context())

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			return runErr
		},
	}
}
