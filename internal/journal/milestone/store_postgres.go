package milestone

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

func (repository *PostgresRepository) ListMilestones(context context.Context, f Filter, limit, offset int) ([]*Milestone, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.RefMilestone.ID, schema.RefMilestone.OwnerID, schema.RefMilestone.Title,
		schema.RefMilestone.Description, schema.RefMilestone.Type, schema.RefMilestone.EventDate,
		schema.RefMilestone.ReminderOption, schema.RefMilestone.TargetCount, schema.RefMilestone.TargetDate,
		schema.RefMilestone.CreatedAt, schema.RefMilestone.UpdatedAt,
		schema.RefMilestone.Table, schema.RefMilestone.OwnerID, schema.RefMilestone.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.RefMilestone.Table, schema.RefMilestone.OwnerID, schema.RefMilestone.DeletedAt,
	)

	args := []any{f.OwnerID}
	countArgs := []any{f.OwnerID}

	if f.Type != "" {
		query += fmt.Sprintf(` AND %s = $2`, schema.RefMilestone.Type)
		countQuery += fmt.Sprintf(` AND %s = $2`, schema.RefMilestone.Type)
		args = append(args, f.Type)
		countArgs = append(countArgs, f.Type)
	}

	query += fmt.Sprintf(` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, schema.RefMilestone.EventDate, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_milestones")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_milestones")
	}
	defer rows.Close()

	var milestones []*Milestone
	for rows.Next() {
		m := &Milestone{}
		if err := rows.Scan(
			&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.Type, &m.Date,
			&m.ReminderOption, &m.TargetCount, &m.TargetDate, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_milestone")
		}
		milestones = append(milestones, m)
	}

	return milestones, total, nil
}

func (repository *PostgresRepository) ListAllMilestones(context context.Context, ownerID string) ([]*Milestone, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
		ORDER BY %s ASC
	`,
		schema.RefMilestone.ID, schema.RefMilestone.OwnerID, schema.RefMilestone.Title,
		schema.RefMilestone.Description, schema.RefMilestone.Type, schema.RefMilestone.EventDate,
		schema.RefMilestone.ReminderOption, schema.RefMilestone.TargetCount, schema.RefMilestone.TargetDate,
		schema.RefMilestone.CreatedAt, schema.RefMilestone.UpdatedAt,
		schema.RefMilestone.Table, schema.RefMilestone.OwnerID, schema.RefMilestone.DeletedAt,
		schema.RefMilestone.EventDate,
	)

	rows, err := repository.db.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_all_milestones")
	}
	defer rows.Close()

	var milestones []*Milestone
	for rows.Next() {
		m := &Milestone{}
		if err := rows.Scan(
			&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.Type, &m.Date,
			&m.ReminderOption, &m.TargetCount, &m.TargetDate, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_milestone")
		}
		milestones = append(milestones, m)
	}

	return milestones, nil
}

func (repository *PostgresRepository) GetMilestone(context context.Context, ownerID, id string) (*Milestone, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
	`,
		schema.RefMilestone.ID, schema.RefMilestone.OwnerID, schema.RefMilestone.Title,
		schema.RefMilestone.Description, schema.RefMilestone.Type, schema.RefMilestone.EventDate,
		schema.RefMilestone.ReminderOption, schema.RefMilestone.TargetCount, schema.RefMilestone.TargetDate,
		schema.RefMilestone.CreatedAt, schema.RefMilestone.UpdatedAt,
		schema.RefMilestone.Table, schema.RefMilestone.ID, schema.RefMilestone.OwnerID, schema.RefMilestone.DeletedAt,
	)

	m := &Milestone{}
	err := repository.db.QueryRow(context, query, id, ownerID).Scan(
		&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.Type, &m.Date,
		&m.ReminderOption, &m.TargetCount, &m.TargetDate, &m.CreatedAt, &m.UpdatedAt,
	)

	return m, dberr.Wrap(err, "get_milestone")
}

func (repository *PostgresRepository) CreateMilestone(context context.Context, m *Milestone) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.RefMilestone.Table, schema.RefMilestone.ID, schema.RefMilestone.OwnerID,
		schema.RefMilestone.Title, schema.RefMilestone.Description, schema.RefMilestone.Type,
		schema.RefMilestone.EventDate, schema.RefMilestone.ReminderOption, schema.RefMilestone.TargetCount,
		schema.RefMilestone.TargetDate, schema.RefMilestone.CreatedAt, schema.RefMilestone.UpdatedAt,
		schema.RefMilestone.CreatedAt, schema.RefMilestone.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.OwnerID, m.Title, m.Description, m.Type, m.Date,
		m.ReminderOption, m.TargetCount, m.TargetDate,
	).Scan(&m.CreatedAt, &m.UpdatedAt)

	return dberr.Wrap(err, "create_milestone")
}

func (repository *PostgresRepository) UpdateMilestone(context context.Context, m *Milestone) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s IS NULL
		RETURNING %s
	`,
		schema.RefMilestone.Table,
		schema.RefMilestone.Title, schema.RefMilestone.Description, schema.RefMilestone.Type,
		schema.RefMilestone.EventDate, schema.RefMilestone.ReminderOption, schema.RefMilestone.TargetCount,
		schema.RefMilestone.TargetDate, schema.RefMilestone.UpdatedAt,
		schema.RefMilestone.ID, schema.RefMilestone.OwnerID, schema.RefMilestone.DeletedAt,
		schema.RefMilestone.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		m.ID, m.OwnerID, m.Title, m.Description, m.Type, m.Date,
		m.ReminderOption, m.TargetCount, m.TargetDate,
	).Scan(&m.UpdatedAt)

	return dberr.Wrap(err, "update_milestone")
}

func (repository *PostgresRepository) DeleteMilestone(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s = $2 AND %s IS NULL`,
		schema.RefMilestone.Table, schema.RefMilestone.DeletedAt,
		schema.RefMilestone.ID, schema.RefMilestone.OwnerID, schema.RefMilestone.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "delete_milestone")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountMilestones(context context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`,
		schema.RefMilestone.Table, schema.RefMilestone.DeletedAt,
	)

	var total int
	err := repository.db.QueryRow(context, query).Scan(&total)
	return total, dberr.Wrap(err, "count_milestones")
}
