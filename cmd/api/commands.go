package main

import (
	"context"
	"errors"
	"fmt"

	"HabitTracker/internal/app"
	"HabitTracker/internal/config"
	"HabitTracker/internal/logger"
	"HabitTracker/internal/repo"
	"HabitTracker/internal/service"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), cfg, func(ctx context.Context, store repo.Store) error {
				return app.Migrate(ctx, cfg, store)
			})
		},
	}
}

func newDropDBCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "drop-db",
		Short: "Roll back every migration, deleting all users, habits and completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to drop data without --yes")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), cfg, func(ctx context.Context, store repo.Store) error {
				return app.DropAll(ctx, cfg, store)
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion of all data")
	return cmd
}

func newUserAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "useradd <username> <password>",
		Short: "Create a user with a bcrypt-hashed password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), cfg, func(ctx context.Context, store repo.Store) error {
				if err := app.Migrate(ctx, cfg, store); err != nil {
					return err
				}
				u, err := service.NewUserService(store.Users()).Register(ctx, args[0], args[1])
				if err != nil {
					return fmt.Errorf("useradd: %w", err)
				}
				logger.Info("user created", "id", u.ID, "username", u.Username)
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", u.ID)
				return nil
			})
		},
	}
}

// withStore opens the configured store for a one-shot command.
func withStore(ctx context.Context, cfg config.Config, fn func(context.Context, repo.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, store)
}
