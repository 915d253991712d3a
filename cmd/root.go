package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmartyn/giftwise/internal/calibrate"
	"github.com/jmartyn/giftwise/internal/catalog"
	"github.com/jmartyn/giftwise/internal/session"
	"github.com/jmartyn/giftwise/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "giftwise",
	Short: "APEST gifting assessment engine",
	Long:  "Giftwise scores APEST (apostolic, prophetic, evangelistic, shepherding, teaching) assessments and tracks completion statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GIFTWISE_DB env var)")
	rootCmd.PersistentFlags().String("calibration", "", "Path to a cultural calibration table (JSON)")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then GIFTWISE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the SQLite store behind every data-bearing command.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newManager wires the session manager over an open store, with the
// built-in catalog registered and calibration loaded when configured.
func newManager(cmd *cobra.Command, st *store.Store) (*session.Manager, error) {
	var factors calibrate.Source
	if path, _ := cmd.Flags().GetString("calibration"); path != "" {
		table, err := calibrate.LoadTable(path)
		if err != nil {
			return nil, err
		}
		factors = table
	}
	catalogs := catalog.NewRegistry(catalog.Builtin())
	return session.NewManager(st.Sessions(), st.Responses(), catalogs, factors), nil
}
