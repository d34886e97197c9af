package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"shop-backend/internal/config"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/migrations"
	"shop-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	var (
		dsn     string
		timeout time.Duration
		db      *sql.DB
	)

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or roll back the shop database schema",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dbConfig, err := config.LoadDatabaseConfig()
				if err != nil {
					return err
				}
				dsn = dbConfig.DSN()
			}
			var err error
			db, err = sql.Open("postgres", dsn)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if db != nil {
				_ = db.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "postgres URL (default: built from DB_* env)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall timeout")

	migrator := func() *database.Migrator { return database.NewMigrator(migrations.FS, db) }

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			ran, err := migrator().Up(ctx)
			if err != nil {
				return err
			}
			log.Info().Ints("versions", ran).Msg("schema up to date")
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down [n]",
		Short: "Roll back the last n migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				var err error
				if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
					return fmt.Errorf("n must be a positive integer, got %q", args[0])
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			rolled, err := migrator().Down(ctx, n)
			if err != nil {
				return err
			}
			log.Info().Ints("versions", rolled).Msg("migrations rolled back")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show which migrations are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			statuses, err := migrator().Status(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED AT")
			for _, s := range statuses {
				applied := "pending"
				if s.AppliedAt != nil {
					applied = s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(w, "%04d\t%s\t%s\n", s.Version, s.Name, applied)
			}
			return w.Flush()
		},
	}

	root.AddCommand(upCmd, downCmd, statusCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
