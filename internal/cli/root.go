// Package cli defines the cobra command tree for amlak.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/amlak/internal/catalog"
	"github.com/evcraddock/amlak/internal/client"
	"github.com/evcraddock/amlak/internal/config"
	"github.com/evcraddock/amlak/internal/db"
	"github.com/evcraddock/amlak/internal/property"
)

var (
	flagFormat  string
	flagDB      string
	flagServer  string
	flagCatalog string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "amlak",
		Short: "Browse and serve the agency's property listings",
		Long: "A storefront for a small real-estate agency. Search, filter and sort the listing catalog " +
			"from the command line, or serve the web UI and JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.amlak/amlak.db)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "query a running server instead of the local catalog")
	root.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "catalog JSON file (default: built-in catalog)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newFeaturedCmd(),
		newNeighborhoodsCmd(),
		newContactCmd(),
		newStatsCmd(),
		newServeCmd(),
		newAdminCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// listingSource is where the read commands get listings from: the local
// catalog, or a running server's API.
type listingSource interface {
	ListProperties(crit property.Criteria) ([]*property.Property, error)
	GetProperty(id string) (*property.Property, error)
	Featured() ([]*property.Property, error)
	Neighborhoods() ([]string, error)
	Agency() (*catalog.Agency, error)
}

type localSource struct {
	cat *catalog.Catalog
}

func (s localSource) ListProperties(crit property.Criteria) ([]*property.Property, error) {
	return s.cat.Query(crit), nil
}

func (s localSource) GetProperty(id string) (*property.Property, error) {
	return s.cat.Get(id)
}

func (s localSource) Featured() ([]*property.Property, error) {
	return s.cat.Featured(), nil
}

func (s localSource) Neighborhoods() ([]string, error) {
	return s.cat.Neighborhoods(), nil
}

func (s localSource) Agency() (*catalog.Agency, error) {
	a := s.cat.Agency()
	return &a, nil
}

// newSource returns the API client when a server is configured, otherwise
// the local catalog.
func newSource() (listingSource, error) {
	if url := remoteURL(); url != "" {
		return client.New(url), nil
	}
	cat, err := openCatalog()
	if err != nil {
		return nil, err
	}
	return localSource{cat: cat}, nil
}

// openCatalog loads the catalog from --catalog, AMLAK_CATALOG or the
// built-in data.
func openCatalog() (*catalog.Catalog, error) {
	path := flagCatalog
	if path == "" {
		path = os.Getenv("AMLAK_CATALOG")
	}
	return catalog.Open(path)
}

// openDB opens the SQLite database using the --db flag, AMLAK_DB or the
// default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = os.Getenv("AMLAK_DB")
	}
	if path == "" {
		path = config.DefaultDBPath()
	}
	return db.Open(path)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
