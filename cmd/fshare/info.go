package main

import (
	"github.com/spf13/cobra"

	"fshare/internal/api"
	"fshare/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show storage accounting",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Info(cmd.Context())
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(resp)
				}

				_ = writePlain("total_files: %d\n", resp.TotalFiles)
				_ = writePlain("total_bytes: %d\n", resp.TotalBytes)
				return nil
			})
		},
	}
}
