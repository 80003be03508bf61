package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/infrastructure/postgres/generated"
)

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	_, err := r.queries.CreateProduct(ctx, generated.CreateProductParams{
		ID:                      product.ID,
		TenantID:                product.TenantID,
		Name:                    product.Name,
		Kind:                    string(product.Kind),
		MinimumBalance:          decimalToNumeric(product.MinimumBalance),
		WithdrawalFee:           decimalToNumeric(product.WithdrawalFee),
		MaxWithdrawalAmount:     decimalToNumeric(product.MaxWithdrawalAmount),
		DailyDepositLimit:       decimalToNumeric(product.DailyDepositLimit),
		DailyWithdrawalLimit:    decimalToNumeric(product.DailyWithdrawalLimit),
		AllowPartialWithdrawals: product.AllowPartialWithdrawals,
		CreatedAt:               timeToPgTimestamptz(product.CreatedAt),
		UpdatedAt:               timeToPgTimestamptz(product.UpdatedAt),
	})

	return err
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row, err := r.queries.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}

		return nil, err
	}

	return &domain.Product{
		ID:                      row.ID,
		TenantID:                row.TenantID,
		Name:                    row.Name,
		Kind:                    domain.AccountKind(row.Kind),
		MinimumBalance:          numericToDecimal(row.MinimumBalance),
		WithdrawalFee:           numericToDecimal(row.WithdrawalFee),
		MaxWithdrawalAmount:     numericToDecimal(row.MaxWithdrawalAmount),
		DailyDepositLimit:       numericToDecimal(row.DailyDepositLimit),
		DailyWithdrawalLimit:    numericToDecimal(row.DailyWithdrawalLimit),
		AllowPartialWithdrawals: row.AllowPartialWithdrawals,
		CreatedAt:               row.CreatedAt.Time,
		UpdatedAt:               row.UpdatedAt.Time,
	}, nil
}
