package linkstore

import (
	"context"
	"fmt"
	"time"
)

// Link is one recorded image-to-row association and the artifacts it
// produced.
type Link struct {
	ID             int64
	ImagePath      string
	CSVPath        string
	RowIndex       int
	MatchKind      string
	MatchKey       string
	Confidence     float64
	OrderSource    string
	PositionSource string
	SidecarPath    string
	ImageSHA256    string
	CSVSHA256      string
	CreatedAt      time.Time
}

// Record inserts a link and returns its assigned ID.
func (s *Store) Record(ctx context.Context, link Link) (int64, error) {
	createdAt := link.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.execWithRetry(ctx, `
		INSERT INTO links (
			image_path, csv_path, row_index, match_kind, match_key,
			confidence, order_source, position_source, sidecar_path,
			image_sha256, csv_sha256, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		link.ImagePath, link.CSVPath, link.RowIndex, link.MatchKind, link.MatchKey,
		link.Confidence, link.OrderSource, link.PositionSource, link.SidecarPath,
		link.ImageSHA256, link.CSVSHA256, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("record link: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("link id: %w", err)
	}
	return id, nil
}

// List returns the most recent links, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Link, error) {
	ctx = ensureContext(ctx)
	query := `
		SELECT id, image_path, csv_path, row_index, match_kind, match_key,
			confidence, order_source, position_source, sidecar_path,
			image_sha256, csv_sha256, created_at
		FROM links ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()
	return scanLinks(rows)
}

// ForImage returns every recorded link for one image path, newest first.
func (s *Store) ForImage(ctx context.Context, imagePath string) ([]Link, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, image_path, csv_path, row_index, match_kind, match_key,
			confidence, order_source, position_source, sidecar_path,
			image_sha256, csv_sha256, created_at
		FROM links WHERE image_path = ? ORDER BY id DESC`, imagePath)
	if err != nil {
		return nil, fmt.Errorf("links for image: %w", err)
	}
	defer rows.Close()
	return scanLinks(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanLinks(rows rowScanner) ([]Link, error) {
	var links []Link
	for rows.Next() {
		var (
			link      Link
			createdAt string
		)
		if err := rows.Scan(
			&link.ID, &link.ImagePath, &link.CSVPath, &link.RowIndex,
			&link.MatchKind, &link.MatchKey, &link.Confidence,
			&link.OrderSource, &link.PositionSource, &link.SidecarPath,
			&link.ImageSHA256, &link.CSVSHA256, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse link timestamp %q: %w", createdAt, err)
		}
		link.CreatedAt = parsed
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}
