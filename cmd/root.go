package main

import (
	"planify-backend/internal/config"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:           "kanban",
		Short:         "Planify kanban backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load before reading the environment (default .env)")

	load := func() (*config.Configuration, error) {
		cfg, err := config.Load(envFiles...)
		if err != nil {
			return nil, err
		}
		cfg.ConfigureLogger()
		return cfg, nil
	}
	cmd.AddCommand(newServeCmd(load), newMigrateCmd(load), newSubscriptionCmd(load))
	return cmd
}

func newMigrateCmd(load func() (*config.Configuration, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			db, err := config.ConnectDB(cfg.DBURL)
			if err != nil {
				return err
			}
			defer config.CloseDB(db)
			return config.MigrateAllModels(db, true)
		},
	}
}
