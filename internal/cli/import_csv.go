package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/importer"
)

// ImportCSVCommand loads a legacy spreadsheet export into the database,
// replacing whatever is there.
type ImportCSVCommand struct {
	CSVPath      string
	DatabasePath string
}

// NewImportCSVCommand creates a new ImportCSVCommand
func NewImportCSVCommand() *ImportCSVCommand {
	return &ImportCSVCommand{}
}

// ParseFlags parses command line flags
func (cmd *ImportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-csv", flag.ExitOnError)

	fs.StringVar(&cmd.CSVPath, "file", "", "Path to the CSV export to import (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the library database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-csv -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Replace the library with the contents of a CSV spreadsheet export.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-csv -file ./lib_updated.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s import-csv -file ./lib_updated.csv -db ./books.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.CSVPath == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}
	return nil
}

// Run executes the import
func (cmd *ImportCSVCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	imported, err := importer.ImportCSV(db.DB, cmd.CSVPath)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d books from %s into %s\n", imported, cmd.CSVPath, cmd.DatabasePath)
	return nil
}
