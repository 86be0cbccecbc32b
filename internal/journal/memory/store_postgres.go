package memory

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

func memoryColumns() string {
	t := schema.RefMemory
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.OwnerID, t.AlbumID, t.Title, t.Description, t.MediaURL,
		t.MediaType, t.TakenAt, t.Latitude, t.Longitude, t.CreatedAt, t.UpdatedAt,
	)
}

func scanMemory(row interface{ Scan(...any) error }) (*Memory, error) {
	m := &Memory{}
	err := row.Scan(
		&m.ID, &m.OwnerID, &m.AlbumID, &m.Title, &m.Description, &m.MediaURL,
		&m.MediaType, &m.TakenAt, &m.Latitude, &m.Longitude, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (repository *PostgresRepository) ListMemories(context context.Context, f Filter, limit, offset int) ([]*Memory, int, error) {
	t := schema.RefMemory

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		memoryColumns(), t.Table, t.OwnerID, t.DeletedAt)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1 AND %s IS NULL`,
		t.Table, t.OwnerID, t.DeletedAt)

	args := []any{f.OwnerID}

	appendClause := func(clause string, value any) {
		query += clause
		countQuery += clause
		args = append(args, value)
	}

	if f.AlbumID != "" {
		appendClause(fmt.Sprintf(` AND %s = $%d`, t.AlbumID, len(args)+1), f.AlbumID)
	}
	if f.MediaType != "" {
		appendClause(fmt.Sprintf(` AND %s = $%d`, t.MediaType, len(args)+1), f.MediaType)
	}
	if f.Query != "" {
		clause := fmt.Sprintf(` AND (%s ILIKE $%d OR %s ILIKE $%d)`, t.Title, len(args)+1, t.Description, len(args)+1)
		appendClause(clause, "%"+f.Query+"%")
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_memories")
	}

	query += fmt.Sprintf(` ORDER BY %s DESC LIMIT $%d OFFSET $%d`, t.TakenAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_memories")
	}
	defer rows.Close()

	var memories []*Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_memory")
		}
		memories = append(memories, m)
	}

	return memories, total, nil
}

func (repository *PostgresRepository) GetMemory(context context.Context, ownerID, id string) (*Memory, error) {
	t := schema.RefMemory

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		memoryColumns(), t.Table, t.ID, t.OwnerID, t.DeletedAt)

	m, err := scanMemory(repository.db.QueryRow(context, query, id, ownerID))
	return m, dberr.Wrap(err, "get_memory")
}

func (repository *PostgresRepository) CreateMemory(context context.Context, m *Memory) error {
	t := schema.RefMemory

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.OwnerID, t.AlbumID, t.Title, t.Description, t.MediaURL,
		t.MediaType, t.TakenAt, t.Latitude, t.Longitude, t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.OwnerID, m.AlbumID, m.Title, m.Description, m.MediaURL,
		m.MediaType, m.TakenAt, m.Latitude, m.Longitude,
	).Scan(&m.CreatedAt, &m.UpdatedAt)

	return dberr.Wrap(err, "create_memory")
}

func (repository *PostgresRepository) UpdateMemory(context context.Context, m *Memory) error {
	t := schema.RefMemory

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s
	`,
		t.Table,
		t.AlbumID, t.Title, t.Description, t.MediaURL, t.MediaType, t.TakenAt,
		t.Latitude, t.Longitude, t.UpdatedAt,
		t.ID, t.OwnerID, t.DeletedAt,
		t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.OwnerID, m.AlbumID, m.Title, m.Description, m.MediaURL,
		m.MediaType, m.TakenAt, m.Latitude, m.Longitude,
	).Scan(&m.UpdatedAt)

	return dberr.Wrap(err, "update_memory")
}

func (repository *PostgresRepository) DeleteMemory(context context.Context, ownerID, id string) error {
	t := schema.RefMemory

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		t.Table, t.DeletedAt, t.ID, t.OwnerID, t.DeletedAt)

	cmd, err := repository.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_memory")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountMemories(context context.Context) (int, error) {
	t := schema.RefMemory

	var total int
	err := repository.db.QueryRow(context,
		fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`, t.Table, t.DeletedAt),
	).Scan(&total)
	return total, dberr.Wrap(err, "count_memories")
}
