package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func createAdminCommand(a *app) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.connect(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer svc.close(a.log)

			admin, err := svc.admins.Create(cmd.Context(), email, password, name)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			a.log.Info("👤 Admin creado", zap.Int64("id", admin.ID), zap.String("email", admin.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
