// Command portfolioctl runs schema migrations and provisions staff accounts.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"portfolio_backend/internal/access"
	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/auth/transport"
	"portfolio_backend/migrations"
	"portfolio_backend/platform/config"
	"portfolio_backend/platform/db"
	"portfolio_backend/platform/logger"
	"portfolio_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "portfolioctl",
		Short:        "Administration tool for the company portfolio backend",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		migrateCmd(),
		createUserCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, pool, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if status, _ := cmd.Flags().GetBool("status"); status {
				return db.MigrationStatus(cmd.Context(), pool, migrations.FS)
			}
			if err := db.RunMigrations(cmd.Context(), pool, migrations.FS); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().Bool("status", false, "print migration status instead of applying")

	return cmd
}

func createUserCmd() *cobra.Command {
	var req transport.RegisterRequest
	var role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a staff account with the given role",
		Long: `Create a user directly in the database. Self-registration always
creates Viewer accounts; use this command for Admin, Manager and Editor.

The password is read from --password or the PORTFOLIO_PASSWORD environment
variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("PORTFOLIO_PASSWORD")
			}
			role = normalizeRole(role)

			cfg, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			log := logger.New(cfg.Env, cfg.LogLevel)
			svc := auth.NewService(pool, cfg, validator.New(), log)
			user, err := svc.CreateUser(cmd.Context(), req, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Username, "username", "", "account username")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&role, "role", access.RoleAdmin, "one of "+strings.Join(access.AllRoles, ", "))
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// normalizeRole matches a role name case-insensitively; unknown names pass
// through for the service to reject.
func normalizeRole(role string) string {
	for _, r := range access.AllRoles {
		if strings.EqualFold(r, role) {
			return r
		}
	}
	return role
}
