// Command migrate applies the SQL files under migrations/ with the atlas CLI.
//
//	go run ./cmd/migrate            # apply pending migrations
//	go run ./cmd/migrate status     # report applied and pending versions
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"hostel-backoffice/internal/pkg/config"
	"hostel-backoffice/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the migration files and atlas.sum")
	bin := flag.String("atlas", "atlas", "path to the atlas binary")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		logger.Error("failed to load database config", "error", err.Error())
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "apply"
	}
	if err := run(ctx, logger, cmd, *dir, *bin, migrationURL(dbCfg)); err != nil {
		logger.Error("migration failed", "command", cmd, "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cmd, dir, bin, url string) error {
	wd, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return errs.Wrap(err, "failed to prepare working directory")
	}
	defer wd.Close()

	client, err := atlasexec.NewClient(wd.Path(), bin)
	if err != nil {
		return errs.Wrap(err, "failed to create atlas client")
	}

	switch cmd {
	case "apply":
		res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: url})
		if err != nil {
			return errs.Wrap(err, "migrate apply")
		}
		logger.Info("migrations applied", "count", len(res.Applied), "current", res.Current, "target", res.Target)
	case "status":
		res, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{URL: url})
		if err != nil {
			return errs.Wrap(err, "migrate status")
		}
		logger.Info("migration status", "status", res.Status, "current", res.Current, "next", res.Next, "pending", len(res.Pending))
	default:
		return errs.Newf("unknown command %q", cmd)
	}
	return nil
}

// migrationURL drops the timezone parameter the pgx pool understands but atlas does not.
func migrationURL(c config.DBConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
