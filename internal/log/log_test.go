package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Use temp directory for test database
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	defer func() { dbPathFunc = origDBPath }()

	t.Run("open and close", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetWorkspace("/test/project/.tasklens")

		Log(Entry{
			Source:  "cli:tag_add",
			Action:  "tag",
			Tag:     "build",
			Target:  "npm:package.json:build",
			Success: true,
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM log").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		var source, action, tag, target string
		var success int
		err = db.QueryRow("SELECT source, action, tag, target, success FROM log WHERE id = 1").
			Scan(&source, &action, &tag, &target, &success)
		require.NoError(t, err)
		assert.Equal(t, "cli:tag_add", source)
		assert.Equal(t, "tag", action)
		assert.Equal(t, "build", tag)
		assert.Equal(t, "npm:package.json:build", target)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetWorkspace("/test/project/.tasklens")

		Log(Entry{
			Source:  "cli:tag_rm",
			Action:  "untag",
			Tag:     "build",
			Success: false,
			Error:   "tag not found",
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "tag not found", errMsg)
	})

	t.Run("log with detail", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetWorkspace("/test/project/.tasklens")

		Log(Entry{
			Source:  "cli:search",
			Action:  "search",
			Success: true,
			Detail:  map[string]any{"query": "deploy", "count": 42},
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var detail string
		err = db.QueryRow("SELECT detail FROM log ORDER BY id DESC LIMIT 1").Scan(&detail)
		require.NoError(t, err)
		assert.Contains(t, detail, "deploy")
		assert.Contains(t, detail, "42")
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()

		// Should not panic
		Log(Entry{
			Source:  "test:cmd",
			Action:  "test",
			Success: true,
		})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)

		err = Open() // second call should succeed
		require.NoError(t, err)

		Close()
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/home/user/project/.tasklens")
	h2 := hash("/home/user/project/.tasklens")
	h3 := hash("/home/user/other/.tasklens")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expected := filepath.Join(home, ".tasklens", "log", "tasklens-log.db")

	origDBPath := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = origDBPath }()

	assert.Equal(t, expected, DBPath())
}

func TestBuilder(t *testing.T) {
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	defer func() { dbPathFunc = origDBPath }()

	t.Run("fluent API success", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetWorkspace("/test/project/.tasklens")

		Event("cli:tag_move", "reorder").
			Tag("build").
			Detail("count", 3).
			Write(nil) // success

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var source, action, tag string
		var success int
		err = db.QueryRow("SELECT source, action, tag, success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&source, &action, &tag, &success)
		require.NoError(t, err)
		assert.Equal(t, "cli:tag_move", source)
		assert.Equal(t, "reorder", action)
		assert.Equal(t, "build", tag)
		assert.Equal(t, 1, success)
	})

	t.Run("fluent API with error", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		SetWorkspace("/test/project/.tasklens")

		testErr := sql.ErrNoRows // use any error
		Event("cli:tag_add", "tag").
			Tag("build").
			Target("npm:package.json:missing").
			Write(testErr)

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, testErr.Error(), errMsg)
	})

	t.Run("builder records timing", func(t *testing.T) {
		Close()
		err := Open()
		require.NoError(t, err)
		defer Close()

		Event("cli:refresh", "refresh").Write(nil)

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var start, end int64
		err = db.QueryRow("SELECT start, end FROM log ORDER BY id DESC LIMIT 1").
			Scan(&start, &end)
		require.NoError(t, err)
		assert.NotZero(t, start)
		assert.GreaterOrEqual(t, end, start)
	})
}
