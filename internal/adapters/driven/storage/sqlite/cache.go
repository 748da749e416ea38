package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ansera-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ansera-cli/internal/core/domain"
	"github.com/custodia-labs/ansera-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.IndexCache = (*Cache)(nil)

// Cache is a SQLite-backed implementation of driven.IndexCache.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens the snapshot database at the given path.
// If path is empty, defaults to ~/.ansera/index.db.
func NewCache(path string) (*Cache, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".ansera", "index.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	c := &Cache{
		db:   db,
		path: path,
	}

	// Run migrations
	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// migrate runs all pending migrations.
func (c *Cache) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_snapshots.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := c.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Load retrieves the snapshot saved under fingerprint.
// Returns domain.ErrNotFound when no snapshot matches. A snapshot that
// cannot be decoded is reported as a miss too, so a corrupt cache never
// blocks a rebuild.
func (c *Cache) Load(ctx context.Context, fingerprint string) (*domain.IndexSnapshot, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT fingerprint, document_id, document_uri, document_title,
		       embedding_model, dimensions, created_at
		FROM snapshots WHERE fingerprint = ?
	`, fingerprint)

	var snapshot domain.IndexSnapshot
	var createdAt sql.NullTime
	if err := row.Scan(&snapshot.Fingerprint, &snapshot.Document.ID,
		&snapshot.Document.URI, &snapshot.Document.Title,
		&snapshot.EmbeddingModel, &snapshot.Dimensions, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	snapshot.Document.Fingerprint = snapshot.Fingerprint
	if createdAt.Valid {
		snapshot.CreatedAt = createdAt.Time
	}
	if snapshot.Dimensions <= 0 {
		return nil, fmt.Errorf("snapshot %s has invalid dimensions %d: %w",
			fingerprint, snapshot.Dimensions, domain.ErrNotFound)
	}

	chunks, err := c.loadChunks(ctx, fingerprint, snapshot.Dimensions)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		// A snapshot without chunks cannot rebuild an index.
		return nil, fmt.Errorf("snapshot %s has no chunks: %w", fingerprint, domain.ErrNotFound)
	}
	snapshot.Chunks = chunks

	return &snapshot, nil
}

// loadChunks reads all chunk rows for a snapshot in position order.
func (c *Cache) loadChunks(ctx context.Context, fingerprint string, dimensions int) ([]domain.Chunk, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, document_id, page, position, content, embedding
		FROM snapshot_chunks WHERE fingerprint = ?
		ORDER BY position
	`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingBlob []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Page,
			&chunk.Position, &chunk.Content, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning snapshot chunk: %w", err)
		}

		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		if len(chunk.Embedding) != dimensions {
			// Truncated blob or mismatched schema. Treat as a miss.
			return nil, fmt.Errorf("snapshot %s chunk %s has %d dimensions, expected %d: %w",
				fingerprint, chunk.ID, len(chunk.Embedding), dimensions, domain.ErrNotFound)
		}

		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot chunks: %w", err)
	}

	return chunks, nil
}

// Save stores the snapshot under its fingerprint, replacing any previous
// snapshot for the same document. The whole write is one transaction, so
// a crash mid-save never leaves a partial snapshot behind.
func (c *Cache) Save(ctx context.Context, snapshot *domain.IndexSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil: %w", domain.ErrInvalidArgument)
	}
	if snapshot.Fingerprint == "" {
		return fmt.Errorf("snapshot fingerprint is empty: %w", domain.ErrInvalidArgument)
	}
	if len(snapshot.Chunks) == 0 {
		return fmt.Errorf("snapshot has no chunks: %w", domain.ErrInvalidArgument)
	}

	createdAt := snapshot.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// One live snapshot per document. The chunk rows go with it via
	// the foreign key cascade.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM snapshots WHERE document_id = ?", snapshot.Document.ID); err != nil {
		return fmt.Errorf("removing previous snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots
			(fingerprint, document_id, document_uri, document_title,
			 embedding_model, dimensions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snapshot.Fingerprint, snapshot.Document.ID, snapshot.Document.URI,
		snapshot.Document.Title, snapshot.EmbeddingModel, snapshot.Dimensions,
		createdAt); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_chunks
			(fingerprint, id, document_id, page, position, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range snapshot.Chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)
		if _, err := stmt.ExecContext(ctx, snapshot.Fingerprint, chunk.ID,
			chunk.DocumentID, chunk.Page, chunk.Position, chunk.Content,
			embeddingBlob); err != nil {
			return fmt.Errorf("saving snapshot chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
