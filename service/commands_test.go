package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"postboard/app/config"
	"postboard/app/models"
	"postboard/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Run the function
	f()

	// Restore stdout and close pipe
	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func mockStdin(input string, f func()) {
	oldStdin := os.Stdin
	r, w, _ := os.Pipe()
	os.Stdin = r

	// Write input in a goroutine to avoid blocking
	go func() {
		w.Write([]byte(input))
		w.Close()
	}()

	// Run the function
	f()

	// Restore stdin
	os.Stdin = oldStdin
}

func setupTestDB(t *testing.T) (string, string) {
	tmpDir := t.TempDir()
	return filepath.Join(tmpDir, "badger"), tmpDir
}

func testConfig(dbPath string) *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			Driver: "badger",
			Badger: config.BadgerConfig{Path: dbPath},
		},
	}
}

func seedPost(t *testing.T, dbPath, title string) string {
	store, err := repositories.OpenBadger(repositories.BadgerOptions{Path: dbPath})
	require.NoError(t, err)
	defer store.Close(context.Background())

	post := &models.Post{Title: title}
	require.NoError(t, store.Insert(context.Background(), post))
	return post.ID.Hex()
}

func TestHandleCommand(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectedExit   int
	}{
		{
			name:           "no arguments",
			args:           []string{},
			expectedOutput: "Usage: postboard db <command>\n\nCommands:",
			expectedExit:   1,
		},
		{
			name:           "help command",
			args:           []string{"help"},
			expectedOutput: "Usage: postboard db <command>\n\nCommands:",
			expectedExit:   0,
		},
		{
			name:           "unknown command",
			args:           []string{"unknown"},
			expectedOutput: "Unknown db command: unknown",
			expectedExit:   1,
		},
		{
			name:           "restore without file",
			args:           []string{"restore"},
			expectedOutput: "Error: backup file path required for restore",
			expectedExit:   1,
		},
		{
			name:           "backup without database",
			args:           []string{"backup", t.TempDir()},
			expectedOutput: "No database exists to backup",
			expectedExit:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exitCode int
			oldOsExit := osExit
			defer func() { osExit = oldOsExit }()
			osExit = func(code int) {
				exitCode = code
				panic("exit")
			}

			output := captureOutput(func() {
				defer func() {
					if r := recover(); r != nil {
						if r != "exit" {
							panic(r)
						}
					}
				}()
				HandleCommand(testConfig(dbPath), tt.args)
			})

			assert.Contains(t, output, tt.expectedOutput)
			if tt.expectedExit > 0 {
				assert.Equal(t, tt.expectedExit, exitCode)
			}
		})
	}
}

func TestInitDb(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	t.Run("initialize new database", func(t *testing.T) {
		output := captureOutput(func() {
			initDb(dbPath)
		})

		assert.Contains(t, output, "Database initialized successfully")
		assert.DirExists(t, dbPath)
	})

	t.Run("initialize existing database", func(t *testing.T) {
		output := captureOutput(func() {
			initDb(dbPath)
		})

		assert.Contains(t, output, "Database already exists")
	})
}

func TestClean(t *testing.T) {
	dbPath, _ := setupTestDB(t)

	t.Run("clean non-existent database", func(t *testing.T) {
		output := captureOutput(func() {
			clean(dbPath)
		})

		assert.Contains(t, output, "Database is already clean")
	})

	t.Run("clean existing database - confirmed", func(t *testing.T) {
		captureOutput(func() { initDb(dbPath) })
		assert.DirExists(t, dbPath)

		var output string
		mockStdin("y\n", func() {
			output = captureOutput(func() {
				clean(dbPath)
			})
		})

		assert.Contains(t, output, "Database cleaned successfully")
		assert.NoDirExists(t, dbPath)
	})

	t.Run("clean existing database - cancelled", func(t *testing.T) {
		captureOutput(func() { initDb(dbPath) })
		assert.DirExists(t, dbPath)

		var output string
		mockStdin("n\n", func() {
			output = captureOutput(func() {
				clean(dbPath)
			})
		})

		assert.Contains(t, output, "Operation cancelled")
		assert.DirExists(t, dbPath)
	})
}

func TestBackupAndRestore(t *testing.T) {
	dbPath, tmpDir := setupTestDB(t)
	backups := filepath.Join(tmpDir, "backups")

	t.Run("backup non-existent database", func(t *testing.T) {
		var code int
		output := captureOutput(func() {
			code = backup(dbPath, backups)
		})

		assert.Equal(t, 1, code)
		assert.Contains(t, output, "No database exists to backup")
	})

	id := seedPost(t, dbPath, "survives restore")

	var backupFile string
	t.Run("backup existing database", func(t *testing.T) {
		var code int
		output := captureOutput(func() {
			code = backup(dbPath, backups)
		})

		assert.Equal(t, 0, code)
		assert.Contains(t, output, "Database backed up successfully")
		files, err := filepath.Glob(filepath.Join(backups, "backup_*.db"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		backupFile = files[0]
	})

	t.Run("restore non-existent backup", func(t *testing.T) {
		output := captureOutput(func() {
			restore(dbPath, filepath.Join(tmpDir, "nonexistent.db"))
		})

		assert.Contains(t, output, "Backup file does not exist")
	})

	t.Run("restore empty backup", func(t *testing.T) {
		empty := filepath.Join(tmpDir, "empty.db")
		require.NoError(t, os.WriteFile(empty, nil, 0644))

		output := captureOutput(func() {
			restore(dbPath, empty)
		})

		assert.Contains(t, output, "Backup file is empty")
	})

	t.Run("restore with existing database - cancelled", func(t *testing.T) {
		var output string
		mockStdin("n\n", func() {
			output = captureOutput(func() {
				restore(dbPath, backupFile)
			})
		})

		assert.Contains(t, output, "Operation cancelled")
		assert.DirExists(t, dbPath)
	})

	t.Run("restore with existing database - confirmed", func(t *testing.T) {
		var output string
		mockStdin("y\n", func() {
			output = captureOutput(func() {
				restore(dbPath, backupFile)
			})
		})
		assert.Contains(t, output, "Database restored successfully")

		store, err := repositories.OpenBadger(repositories.BadgerOptions{Path: dbPath})
		require.NoError(t, err)
		defer store.Close(context.Background())

		post, err := store.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "survives restore", post.Title)
	})

	t.Run("restore to clean state", func(t *testing.T) {
		fresh := filepath.Join(tmpDir, "fresh")

		output := captureOutput(func() {
			restore(fresh, backupFile)
		})

		assert.Contains(t, output, "Database restored successfully")
	})
}
