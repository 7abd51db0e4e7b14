package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"fshare/internal/api"
	"fshare/internal/config"
)

func newDownloadCmd(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a file by identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			return withClient(cfg, func(client *api.Client) error {
				var w io.Writer = os.Stdout
				var dest *os.File
				writeToStdout := output == "" || output == "-"
				if !writeToStdout {
					var err error
					dest, err = os.Create(output)
					if err != nil {
						return err
					}
					defer dest.Close()
					w = dest
				}

				result, err := client.Download(cmd.Context(), id, w)
				if err != nil {
					if dest != nil {
						_ = os.Remove(output)
					}
					return err
				}

				if !writeToStdout {
					fmt.Fprintf(os.Stderr, "saved %s (%s, %d bytes) to %s\n",
						result.Filename, result.MediaType, result.Size, output)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
