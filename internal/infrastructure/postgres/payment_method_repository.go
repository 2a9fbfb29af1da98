package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Orcamentos-api/internal/domain/entity"
	"github.com/jhoicas/Orcamentos-api/internal/domain/repository"
)

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo formas de pago.
type PaymentMethodRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentMethodRepository construye el adaptador.
func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepo {
	return &PaymentMethodRepo{pool: pool}
}

const paymentMethodColumns = `id, name, description, is_active, created_at, updated_at`

func scanPaymentMethod(row pgx.Row) (*entity.PaymentMethod, error) {
	var pm entity.PaymentMethod
	if err := row.Scan(&pm.ID, &pm.Name, &pm.Description, &pm.IsActive, &pm.CreatedAt, &pm.UpdatedAt); err != nil {
		return nil, err
	}
	return &pm, nil
}

// Create persiste una forma de pago.
func (r *PaymentMethodRepo) Create(ctx context.Context, pm *entity.PaymentMethod) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payment_methods (id, name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		pm.ID, pm.Name, pm.Description, pm.IsActive, pm.CreatedAt, pm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

// GetByID obtiene una forma de pago por ID.
func (r *PaymentMethodRepo) GetByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	pm, err := scanPaymentMethod(r.pool.QueryRow(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return pm, nil
}

// Update sobrescribe la forma de pago.
func (r *PaymentMethodRepo) Update(ctx context.Context, pm *entity.PaymentMethod) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE payment_methods SET name = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $1`, pm.ID, pm.Name, pm.Description, pm.IsActive, pm.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update payment method: %w", err)
	}
	return nil
}

// List más recientes primero.
func (r *PaymentMethodRepo) List(ctx context.Context, limit, offset int) ([]*entity.PaymentMethod, error) {
	return r.list(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
}

// Count total de formas de pago.
func (r *PaymentMethodRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment_methods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payment methods: %w", err)
	}
	return n, nil
}

// ListActive formas de pago activas por nombre.
func (r *PaymentMethodRepo) ListActive(ctx context.Context) ([]*entity.PaymentMethod, error) {
	return r.list(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods WHERE is_active ORDER BY name`)
}

// Delete elimina la forma de pago.
func (r *PaymentMethodRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	return nil
}

func (r *PaymentMethodRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, pm)
	}
	return list, rows.Err()
}
