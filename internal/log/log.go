// Package log provides centralised audit logging for tasklens operations.
// Logs are stored in ~/.tasklens/log/tasklens-log.db and track CLI commands
// and MCP tool invocations across workspaces.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("cli:tag_add", "tag").
//		Tag(name).
//		Target(taskID).
//		Write(err)
//
//	log.Event("cli:search", "search").
//		Detail("query", query).
//		Detail("count", len(results)).
//		Write(err)
//
// The source parameter follows the format "cli:{command}" for CLI commands
// or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"sync"
	"time"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "cli:tag_add", "mcp:tasklens_search"
	Action string // verb: tag, untag, reorder, search, refresh, ...
	Tag    string // input: tag name, when the operation targets one
	Target string // input: task ID or pattern text

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API. Create with [Event],
// chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Tag sets the tag name this operation affects.
func (b *Builder) Tag(tag string) *Builder {
	b.entry.Tag = tag
	return b
}

// Target sets the task ID or pattern this operation affects.
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// Detail adds a key-value pair to the log entry's detail map. Can be called
// multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from
// err. This is the standard way to complete a log entry after an operation.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort
// logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	l, err := open(dbPath())
	if err != nil {
		return err
	}
	global = l
	return nil
}

// SetWorkspace sets the workspace identifier for subsequent log entries.
// The dir should be the absolute path to the .tasklens directory.
func SetWorkspace(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.workspace = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}

// DB exposes the log database for query tooling. Nil when not open.
func DB() *sql.DB {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return nil
	}
	return global.db
}
