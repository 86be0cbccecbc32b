package album

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keepsakehq/keepsake/internal/platform/database/schema"
	"github.com/keepsakehq/keepsake/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func albumColumns() string {
	t := schema.RefAlbum
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.OwnerID, t.Name, t.Slug, t.Description, t.CoverMemoryID, t.CreatedAt, t.UpdatedAt,
	)
}

func scanAlbum(row interface{ Scan(...any) error }) (*Album, error) {
	a := &Album{}
	err := row.Scan(
		&a.ID, &a.OwnerID, &a.Name, &a.Slug, &a.Description, &a.CoverMemoryID, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (repository *PostgresRepository) ListAlbums(context context.Context, f Filter, limit, offset int) ([]*Album, int, error) {
	t := schema.RefAlbum

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		albumColumns(), t.Table, t.OwnerID, t.DeletedAt)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.OwnerID, t.DeletedAt)

	args := []any{f.OwnerID}

	if f.Query != "" {
		clause := fmt.Sprintf(` AND %s ILIKE $2`, t.Name)
		query += clause
		countQuery += clause
		args = append(args, "%"+f.Query+"%")
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_albums")
	}

	query += fmt.Sprintf(` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, t.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_albums")
	}
	defer rows.Close()

	var albums []*Album
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_album")
		}
		albums = append(albums, a)
	}

	return albums, total, nil
}

func (repository *PostgresRepository) GetAlbum(context context.Context, ownerID, id string) (*Album, error) {
	t := schema.RefAlbum

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		albumColumns(), t.Table, t.ID, t.OwnerID, t.DeletedAt)

	a, err := scanAlbum(repository.db.QueryRow(context, query, id, ownerID))
	return a, dberr.Wrap(err, "get_album")
}

func (repository *PostgresRepository) GetAlbumBySlug(context context.Context, ownerID, slug string) (*Album, error) {
	t := schema.RefAlbum

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		albumColumns(), t.Table, t.Slug, t.OwnerID, t.DeletedAt)

	a, err := scanAlbum(repository.db.QueryRow(context, query, slug, ownerID))
	return a, dberr.Wrap(err, "get_album_by_slug")
}

func (repository *PostgresRepository) CreateAlbum(context context.Context, a *Album) error {
	t := schema.RefAlbum

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.OwnerID, t.Name, t.Slug, t.Description, t.CoverMemoryID,
		t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		a.ID, a.OwnerID, a.Name, a.Slug, a.Description, a.CoverMemoryID,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	return dberr.Wrap(err, "create_album")
}

func (repository *PostgresRepository) UpdateAlbum(context context.Context, a *Album) error {
	t := schema.RefAlbum

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s
	`,
		t.Table,
		t.Name, t.Slug, t.Description, t.CoverMemoryID, t.UpdatedAt,
		t.ID, t.OwnerID, t.DeletedAt,
		t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		a.ID, a.OwnerID, a.Name, a.Slug, a.Description, a.CoverMemoryID,
	).Scan(&a.UpdatedAt)

	return dberr.Wrap(err, "update_album")
}

func (repository *PostgresRepository) DeleteAlbum(context context.Context, ownerID, id string) error {
	t := schema.RefAlbum

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		t.Table, t.DeletedAt, t.ID, t.OwnerID, t.DeletedAt)

	cmd, err := repository.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_album")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountAlbums(context context.Context) (int, error) {
	t := schema.RefAlbum

	var total int
	err := repository.db.QueryRow(context,
		fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, t.Table, t.DeletedAt),
	).Scan(&total)
	return total, dberr.Wrap(err, "count_albums")
}
