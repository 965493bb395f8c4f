package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/easypresenter/easypresenter/internal/songs"
)

// SongStore implements songs.Repository. Every call holds the interactive
// lock; writes run in transactions.
type SongStore struct {
	db *DB
}

func newSongStore(db *DB) *SongStore {
	return &SongStore{db: db}
}

var _ songs.Repository = (*SongStore)(nil)

func scanSong(scanner interface{ Scan(...any) error }) (*SongModel, error) {
	var model SongModel
	err := scanner.Scan(&model.ID, &model.Titulo, &model.Tono, &model.Categoria)
	return &model, err
}

func (s *SongStore) List(ctx context.Context, filter string) ([]songs.Song, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, titulo, tono, categoria FROM cantos WHERE titulo LIKE ? ORDER BY titulo`,
		"%"+filter+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var list []songs.Song
	for rows.Next() {
		model, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		list = append(list, model.toDomain())
	}
	return list, rows.Err()
}

func (s *SongStore) Get(ctx context.Context, id int64) (songs.Song, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	model, err := scanSong(s.db.conn.QueryRowContext(ctx,
		`SELECT id, titulo, tono, categoria FROM cantos WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return songs.Song{}, &songs.NotFoundError{ID: id}
	}
	if err != nil {
		return songs.Song{}, fmt.Errorf("failed to get song: %w", err)
	}
	return model.toDomain(), nil
}

func (s *SongStore) Slides(ctx context.Context, id int64) ([]songs.Slide, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, canto_id, orden, texto FROM diapositivas WHERE canto_id = ? ORDER BY orden`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list slides: %w", err)
	}
	defer rows.Close()

	var slides []songs.Slide
	for rows.Next() {
		var m SlideModel
		if err := rows.Scan(&m.ID, &m.CantoID, &m.Orden, &m.Texto); err != nil {
			return nil, fmt.Errorf("failed to scan slide: %w", err)
		}
		slides = append(slides, m.toDomain())
	}
	return slides, rows.Err()
}

func (s *SongStore) Add(ctx context.Context, title, lyrics string) (int64, error) {
	title, err := songs.ValidateTitle(title)
	if err != nil {
		return 0, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var id int64
	err = s.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO cantos (titulo, tono, categoria) VALUES (?, '', ?)`, title, songs.DefaultCategory)
		if err != nil {
			return fmt.Errorf("failed to insert song: %w", err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		return insertSlides(ctx, tx, id, lyrics)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SongStore) Update(ctx context.Context, id int64, title, lyrics string) error {
	title, err := songs.ValidateTitle(title)
	if err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return s.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE cantos SET titulo = ? WHERE id = ?`, title, id)
		if err != nil {
			return fmt.Errorf("failed to update song: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return &songs.NotFoundError{ID: id}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM diapositivas WHERE canto_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear slides: %w", err)
		}
		return insertSlides(ctx, tx, id, lyrics)
	})
}

func (s *SongStore) Delete(ctx context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	return s.db.withTx(ctx, func(tx *sql.Tx) error {
		// Legacy tables lack ON DELETE CASCADE.
		if _, err := tx.ExecContext(ctx, `DELETE FROM diapositivas WHERE canto_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete slides: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM cantos WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete song: %w", err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			return &songs.NotFoundError{ID: id}
		}
		return nil
	})
}

func insertSlides(ctx context.Context, tx *sql.Tx, songID int64, lyrics string) error {
	for i, stanza := range songs.SplitStanzas(lyrics) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diapositivas (canto_id, orden, texto) VALUES (?, ?, ?)`,
			songID, i+1, stanza,
		); err != nil {
			return fmt.Errorf("failed to insert slide %d: %w", i+1, err)
		}
	}
	return nil
}
