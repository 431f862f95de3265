package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/haulmatch/admin-console/internal/bootstrap"
	"github.com/haulmatch/admin-console/internal/data/pgxutil"
	"github.com/haulmatch/admin-console/internal/migrate"
)

const defaultMigrateTimeout = 2 * time.Minute

func runMigrate(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	status := fs.Bool("status", false, "List migrations and whether they are applied")
	timeout := fs.Duration("timeout", defaultMigrateTimeout, "Overall timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, *timeout)
	defer cancel()

	pool, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if !*status {
		if err := bootstrap.RunMigrations(ctx, pool, cmdCtx.Logger); err != nil {
			return err
		}
		return writeln(cmdCtx.Out, "Migrations applied.")
	}

	db := pgxutil.OpenSQL(pool)
	defer db.Close()
	migrations, err := migrate.Status(ctx, db)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(migrations))
	for _, m := range migrations {
		rows = append(rows, []string{m.Version, yesNo(m.Applied)})
	}
	return writeTable(cmdCtx.Out, []string{"VERSION", "APPLIED"}, rows)
}
