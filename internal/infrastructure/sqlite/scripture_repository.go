package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/easypresenter/easypresenter/internal/log"
	"github.com/easypresenter/easypresenter/internal/scripture"
)

// ErrVersionExists is returned when importing a version name already present
// without replace.
var ErrVersionExists = errors.New("scripture version already exists")

// ScriptureStore reads and imports scripture text.
type ScriptureStore struct {
	db *DB
}

func newScriptureStore(db *DB) *ScriptureStore {
	return &ScriptureStore{db: db}
}

// ListVersions returns every (id, nombre) row in discovery order.
func (s *ScriptureStore) ListVersions(ctx context.Context) ([]scripture.VersionRow, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.conn.QueryContext(ctx, `SELECT id, nombre FROM versiones ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []scripture.VersionRow
	for rows.Next() {
		var row scripture.VersionRow
		if err := rows.Scan(&row.ID, &row.Name); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, row)
	}
	return versions, rows.Err()
}

// ListBooks returns the books present in a version with their last chapter,
// ordered by book number.
func (s *ScriptureStore) ListBooks(ctx context.Context, versionID int64) ([]scripture.BookSummary, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT libro_numero, libro_nombre, MAX(capitulo)
		FROM versiculos WHERE version_id = ?
		GROUP BY libro_numero ORDER BY libro_numero`,
		versionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []scripture.BookSummary
	for rows.Next() {
		var b scripture.BookSummary
		if err := rows.Scan(&b.Number, &b.Name, &b.MaxChapter); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// FetchVerses returns one chapter ordered by verse number. It runs on loader
// workers and does not take the interactive lock.
func (s *ScriptureStore) FetchVerses(ctx context.Context, versionID int64, book, chapter int) ([]scripture.Verse, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT capitulo, versiculo, texto FROM versiculos
		WHERE version_id = ? AND libro_numero = ? AND capitulo = ?
		ORDER BY versiculo`,
		versionID, book, chapter,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch verses: %w", err)
	}
	defer rows.Close()

	verses := []scripture.Verse{}
	for rows.Next() {
		var m VerseModel
		if err := rows.Scan(&m.Capitulo, &m.Versiculo, &m.Texto); err != nil {
			return nil, fmt.Errorf("failed to scan verse: %w", err)
		}
		verses = append(verses, m.toDomain())
	}
	return verses, rows.Err()
}

// ImportVersion stores records as a version named name in one transaction
// and returns its id. With replace, an existing version of that name keeps
// its id and has its verses replaced; without it ErrVersionExists is
// returned.
func (s *ScriptureStore) ImportVersion(ctx context.Context, name string, records []scripture.VerseRecord, replace bool) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var versionID int64
	err := s.db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT id FROM versiones WHERE nombre = ?`, name).Scan(&versionID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			result, err := tx.ExecContext(ctx, `INSERT INTO versiones (nombre) VALUES (?)`, name)
			if err != nil {
				return fmt.Errorf("failed to insert version: %w", err)
			}
			if versionID, err = result.LastInsertId(); err != nil {
				return fmt.Errorf("failed to get last insert id: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up version: %w", err)
		case !replace:
			return fmt.Errorf("%q: %w", name, ErrVersionExists)
		default:
			if _, err := tx.ExecContext(ctx, `DELETE FROM versiculos WHERE version_id = ?`, versionID); err != nil {
				return fmt.Errorf("failed to clear version: %w", err)
			}
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO versiculos (version_id, libro_numero, libro_nombre, capitulo, versiculo, texto)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare verse insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			if _, err := stmt.ExecContext(ctx, versionID, r.Book, r.BookName, r.Chapter, r.Verse, r.Text); err != nil {
				return fmt.Errorf("failed to insert %s %d:%d: %w", r.BookName, r.Chapter, r.Verse, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info(log.CatImport, "version imported", "name", name, "id", versionID, "verses", len(records))
	return versionID, nil
}
