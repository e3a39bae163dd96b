package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davicafu/hexacms/internal/config"
	"github.com/davicafu/hexacms/internal/shared/infra/platform/query"
	"github.com/davicafu/hexacms/pkg/logger"
)

// app guarda lo que comparten los subcomandos tras el preRun.
type app struct {
	envFile string
	cfg     *config.Config
	log     *zap.Logger
}

func (a *app) dialect() query.Dialect {
	return query.Dialect(a.cfg.DatabaseDriver)
}

// preRun carga configuración y logger antes de cualquier subcomando.
func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.envFile)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel, !cfg.IsProduction()); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg = cfg
	a.log = logger.Logger()
	return nil
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "hexacms",
		Short:             "CMS API with separate admin and user areas",
		SilenceUsage:      true,
		PersistentPreRunE: a.preRun,
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the environment")

	root.AddCommand(
		serveCommand(a),
		migrateCommand(a),
		createAdminCommand(a),
		seedCommand(a),
	)
	return root
}

// ---------------- Main ----------------
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
	_ = logger.Logger().Sync()
}
