package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/digitalive/digitalive/pkg/balance"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

type Repository interface {
	GetAll(ctx context.Context) ([]Asset, error)
	// Store inserts the asset and debits the balance by its amount in one
	// transaction. Returns ErrInsufficientBalance and writes nothing when
	// the balance cannot cover the amount.
	Store(ctx context.Context, asset Asset) error
	// Delete removes the asset and credits its amount back in one
	// transaction. Returns false when no such asset exists.
	Delete(ctx context.Context, assetId string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Asset, error) {
	query := `SELECT id, name, amount, created_at FROM company_assets ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query assets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	assets := []Asset{}
	for rows.Next() {
		var asset Asset
		if err := rows.Scan(&asset.ID, &asset.Name, &asset.Amount, &asset.CreatedAt); err != nil {
			err := fmt.Errorf("could not scan asset: %w", err)
			log.Error(err)
			return nil, err
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return assets, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, asset Asset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the balance row first so concurrent purchases cannot both pass
	// the sufficiency check.
	var current decimal.Decimal
	query := `SELECT amount FROM company_balance WHERE id = 1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query).Scan(&current); err != nil {
		err := fmt.Errorf("could not read balance: %w", err)
		log.Error(err)
		return err
	}
	if current.LessThan(asset.Amount) {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientBalance, current, asset.Amount)
	}

	if _, err := balance.ApplyDeltaTx(ctx, tx, asset.Amount.Neg()); err != nil {
		return err
	}

	insert := `INSERT INTO company_assets (id, name, amount, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insert, asset.ID, asset.Name, asset.Amount, asset.CreatedAt); err != nil {
		err := fmt.Errorf("could not insert asset: %w", err)
		log.Error(err)
		return err
	}

	return tx.Commit()
}

func (r *RepositoryImpl) Delete(ctx context.Context, assetId string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var amount decimal.Decimal
	query := `SELECT amount FROM company_assets WHERE id = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, assetId).Scan(&amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		err := fmt.Errorf("could not read asset: %w", err)
		log.Error(err)
		return false, err
	}

	if _, err := balance.ApplyDeltaTx(ctx, tx, amount); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM company_assets WHERE id = $1`, assetId); err != nil {
		err := fmt.Errorf("could not delete asset: %w", err)
		log.Error(err)
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
