package main

import (
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fshare/internal/api"
	"fshare/internal/config"
)

func newUploadCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var mediaType string

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			declared := mediaType
			if declared == "" {
				declared = mime.TypeByExtension(filepath.Ext(path))
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Upload(cmd.Context(), filepath.Base(path), declared, f)
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("id: %d\nurl: %s\n", resp.ID, resp.URL)
			})
		},
	}

	cmd.Flags().StringVarP(&mediaType, "type", "t", "", "declared media type (defaults to the file extension's type)")
	return cmd
}
