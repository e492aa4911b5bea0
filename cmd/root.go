// Package cmd wires the bookshop CLI.
package cmd

import (
	"cmp"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookshop/internal/logger"
	"bookshop/shop"
)

const (
	defaultDBPath = "bookshop.db"
	envDBPath     = "BOOKSHOP_DB"
)

var (
	dbPath string
	debug  bool

	db       *sql.DB
	books    *shop.BookStore
	users    *shop.UserStore
	orders   *shop.OrderStore
	sessions *shop.SessionManager
	service  *shop.OrderService
)

var rootCmd = &cobra.Command{
	Use:           "bookshop",
	Short:         "Library catalog and order placement utility",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Get(debug)

		var err error
		db, err = shop.Open(cmp.Or(os.Getenv(envDBPath), dbPath))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		if books, err = shop.NewBookStore(db); err != nil {
			return err
		}
		users = shop.NewUserStore(db)
		orders = shop.NewOrderStore(db)
		sessions = shop.NewSessionManager()
		service = shop.NewOrderService(orders, sessions, shop.LogNotifier{})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if books != nil {
			books.Close()
		}
		if db != nil {
			db.Close()
		}
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath, "path to the sqlite database (env "+envDBPath+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
