package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"fshare/internal/blobstore"
	"fshare/internal/config"
	"fshare/internal/fileshare"
	"fshare/internal/server"
	"fshare/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the fshare API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening catalog", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			blobs, err := blobstore.NewLocal(cfg.StorageDir())
			if err != nil {
				return err
			}

			service := fileshare.NewService(st, blobs, cfg.Storage.QuotaBytes, logger)
			srv := server.New(addr, service, server.Options{
				MaxUploadBytes:     cfg.Storage.MaxUploadBytes,
				MultipartMaxMemory: cfg.Storage.MultipartMaxMemory,
			}, logger)
			return srv.ListenAndServe()
		},
	}
}
