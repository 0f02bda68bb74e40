package notice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, n *Notice) error
	GetByID(ctx context.Context, id string) (*Notice, error)
	List(ctx context.Context, filter Filter) ([]*Notice, int, error)
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, n *Notice) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.notices").
		Columns("title", "body", "room_id", "starts_at", "ends_at").
		Values(n.Title, n.Body, n.RoomID, n.StartsAt, n.EndsAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create notice query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return fmt.Errorf("create notice failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Notice, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "title", "body", "room_id", "starts_at", "ends_at",
		"created_at", "updated_at",
	).
		From("public.notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get notice query failed: %w", err)
	}

	var n Notice
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&n.ID, &n.Title, &n.Body, &n.RoomID, &n.StartsAt, &n.EndsAt,
		&n.CreatedAt, &n.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get notice failed: %w", err)
	}
	return &n, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Notice, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "title", "body", "room_id", "starts_at", "ends_at",
		"created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.notices")

	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"room_id": filter.RoomID})
	}
	if filter.ActiveAt != nil {
		query = query.Where(squirrel.LtOrEq{"starts_at": filter.ActiveAt}).
			Where(squirrel.Or{
				squirrel.Eq{"ends_at": nil},
				squirrel.Gt{"ends_at": filter.ActiveAt},
			})
	}

	query = query.OrderBy("starts_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list notices query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notices failed: %w", err)
	}
	defer rows.Close()

	var notices []*Notice
	var total int

	for rows.Next() {
		var n Notice
		if err := rows.Scan(
			&n.ID, &n.Title, &n.Body, &n.RoomID, &n.StartsAt, &n.EndsAt,
			&n.CreatedAt, &n.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan notice failed: %w", err)
		}
		notices = append(notices, &n)
	}

	return notices, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, n *Notice) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.notices").
		Set("title", n.Title).
		Set("body", n.Body).
		Set("room_id", n.RoomID).
		Set("starts_at", n.StartsAt).
		Set("ends_at", n.EndsAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": n.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update notice query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update notice failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete notice query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete notice failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
