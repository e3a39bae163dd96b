package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sharedDB "github.com/davicafu/hexacms/internal/shared/infra/platform/db"
)

func migrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.AddCommand(migrateDirection(a, sharedDB.Up, "Apply all pending migrations"))
	cmd.AddCommand(migrateDirection(a, sharedDB.Down, "Roll back every migration"))
	return cmd
}

func migrateDirection(a *app, dir sharedDB.Direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(dir),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := sharedDB.Migrate(a.dialect(), a.cfg.DatabaseURL, dir); err != nil {
				return err
			}
			a.log.Info("✅ Migraciones aplicadas", zap.String("direction", string(dir)), zap.String("driver", a.cfg.DatabaseDriver))
			return nil
		},
	}
}
