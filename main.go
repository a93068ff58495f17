package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "bizadmin/internal/config"
	intdb "bizadmin/internal/db"
	router "bizadmin/internal/http"
	"bizadmin/internal/http/handlers"
	"bizadmin/internal/models"
	"bizadmin/internal/repositories"
	"bizadmin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bizadmin",
		Short:         "Generic business admin backend",
		SilenceUsage:  true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateAdminCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(autoMigrate bool) error {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		return err
	}
	defer intconfig.CloseDB()

	if autoMigrate {
		if err := intdb.Migrate(db, env.DBDriver); err != nil {
			return err
		}
	}

	cleanup := &services.TokenCleanup{Store: repositories.TokenRepository{DB: db}, Spec: env.TokenPurgeSpec}
	if err := cleanup.Start(); err != nil {
		return err
	}
	defer cleanup.Stop()

	api := &handlers.API{
		DB:       db,
		Dialect:  env.DBDriver,
		Registry: models.NewRegistry(),
		Auth: services.AuthService{
			Secret:     []byte(env.JWTSecret),
			AccessTTL:  env.AccessTTL,
			RefreshTTL: env.RefreshTTL,
		},
	}
	r := router.NewRouter(env, api)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("Server stopped.")
	return nil
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Manage the database schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}

			env := intconfig.LoadEnv()
			db, err := intconfig.ConnectDB(env)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()

			switch action {
			case "up":
				if err := intdb.Migrate(db, env.DBDriver); err != nil {
					return err
				}
			case "down":
				if err := intdb.Rollback(db, env.DBDriver); err != nil {
					return err
				}
			case "status":
			default:
				return fmt.Errorf("unknown migrate action %q (want up, down or status)", action)
			}

			v, err := intdb.Version(db, env.DBDriver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", v)
			return nil
		},
	}
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	var name, username, email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := intconfig.LoadEnv()
			db, err := intconfig.ConnectDB(env)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()

			svc := services.ResourceService{
				Registry: models.NewRegistry(),
				Store:    repositories.ResourceRepository{DB: db},
			}
			if name == "" {
				name = username
			}
			rec, err := svc.Create(cmd.Context(), "users", map[string]any{
				"name":     name,
				"username": username,
				"email":    email,
				"password": password,
				"role":     "admin",
				"active":   true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin id=%v\n", rec["id"])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to username)")
	cmd.Flags().StringVar(&username, "username", "", "login username")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
