package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	dbPath := "./test_importer_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleCSV = `Name,Author,Series,# of Pages,Language,Genre,Subgenre,Read,Home?,Non Fiction,Purchase Year,Purchase Location,Publisher
Dune,Frank Herbert,yes,412,English,Sci-Fi,Space Opera,yes,yes,no,2020,Bookstore,Ace
The Hobbit,J.R.R. Tolkien,,310,English,Fantasy,,,no,,,,
,Anonymous,,,,,,,,,,,
`

func TestImportCSV(t *testing.T) {
	t.Run("maps spreadsheet columns onto records", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		imported, err := ImportCSV(db, writeCSV(t, sampleCSV))
		require.NoError(t, err)
		assert.Equal(t, 2, imported, "the title-less row is skipped")

		var dune entities.Book
		require.NoError(t, db.Where("title = ?", "Dune").First(&dune).Error)
		require.NotNil(t, dune.Author)
		assert.Equal(t, "Frank Herbert", *dune.Author)
		require.NotNil(t, dune.IsSeries)
		assert.True(t, *dune.IsSeries)
		require.NotNil(t, dune.Pages)
		assert.Equal(t, 412, *dune.Pages)
		assert.Equal(t, entities.StatusFinished, dune.Status, "a truthy Read column means Finished")
		require.NotNil(t, dune.IsOwned)
		assert.True(t, *dune.IsOwned)
		require.NotNil(t, dune.IsNonfiction)
		assert.False(t, *dune.IsNonfiction)
		require.NotNil(t, dune.PurchaseYear)
		assert.Equal(t, 2020, *dune.PurchaseYear)

		var hobbit entities.Book
		require.NoError(t, db.Where("title = ?", "The Hobbit").First(&hobbit).Error)
		assert.Equal(t, entities.StatusNotStarted, hobbit.Status, "an empty Read column means Not Started")
		assert.Nil(t, hobbit.IsSeries)
		assert.Nil(t, hobbit.Subgenre)
		require.NotNil(t, hobbit.IsOwned)
		assert.False(t, *hobbit.IsOwned)
	})

	t.Run("replaces the existing catalogue", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.Create(&entities.Book{Title: "Old Book", Status: entities.StatusNotStarted}).Error)

		imported, err := ImportCSV(db, writeCSV(t, sampleCSV))
		require.NoError(t, err)
		assert.Equal(t, 2, imported)

		var count int64
		require.NoError(t, db.Model(&entities.Book{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)

		err = db.Where("title = ?", "Old Book").First(&entities.Book{}).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("handles a UTF-8 BOM in the header", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		imported, err := ImportCSV(db, writeCSV(t, "\ufeff"+sampleCSV))
		require.NoError(t, err)
		assert.Equal(t, 2, imported)
	})

	t.Run("fails for a missing file", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		_, err := ImportCSV(db, "./no-such-file.csv")
		assert.Error(t, err)
	})

	t.Run("fails without the Name header", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		_, err := ImportCSV(db, writeCSV(t, "Title,Author\nDune,Herbert\n"))
		assert.Error(t, err)
	})
}

func TestBootstrap(t *testing.T) {
	t.Run("imports into an empty database", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		imported, err := Bootstrap(db, writeCSV(t, sampleCSV))
		require.NoError(t, err)
		assert.Equal(t, 2, imported)
	})

	t.Run("does nothing when data already exists", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, db.Create(&entities.Book{Title: "Existing", Status: entities.StatusNotStarted}).Error)

		imported, err := Bootstrap(db, writeCSV(t, sampleCSV))
		require.NoError(t, err)
		assert.Equal(t, 0, imported)

		var count int64
		require.NoError(t, db.Model(&entities.Book{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("does nothing without a configured path", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		imported, err := Bootstrap(db, "")
		require.NoError(t, err)
		assert.Equal(t, 0, imported)
	})

	t.Run("does nothing when the file is absent", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		imported, err := Bootstrap(db, "./no-such-file.csv")
		require.NoError(t, err)
		assert.Equal(t, 0, imported)
	})
}
