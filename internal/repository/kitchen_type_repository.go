package repository

import (
	"context"
	"database/sql"
	"errors"
)

// KitchenType represents a catering style a reservation can be paired
// with.  Like rooms, kitchen types are read-only reference data.
type KitchenType struct {
	ID   uint64 // ID is the primary key of the kitchen type
	Name string // Name is the label shown in the form combo box
}

// KitchenTypeRepo provides read access to kitchen types.
type KitchenTypeRepo struct {
	db *sql.DB
}

// NewKitchenTypeRepo constructs a KitchenTypeRepo with the given DB handle.
func NewKitchenTypeRepo(db *sql.DB) *KitchenTypeRepo {
	return &KitchenTypeRepo{db: db}
}

// GetByID retrieves a kitchen type by its ID, returning
// ErrKitchenTypeNotFound when no row matches.
func (r *KitchenTypeRepo) GetByID(ctx context.Context, id uint64) (*KitchenType, error) {
	const q = `SELECT id, name FROM kitchen_types WHERE id = ?`
	var kt KitchenType
	err := r.db.QueryRowContext(ctx, q, id).Scan(&kt.ID, &kt.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKitchenTypeNotFound
		}
		return nil, err
	}
	return &kt, nil
}

// ListAll returns every kitchen type in storage order; empty slice when none.
func (r *KitchenTypeRepo) ListAll(ctx context.Context) ([]*KitchenType, error) {
	const q = `SELECT id, name FROM kitchen_types ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*KitchenType, 0)
	for rows.Next() {
		kt := new(KitchenType)
		if err := rows.Scan(&kt.ID, &kt.Name); err != nil {
			return nil, err
		}
		out = append(out, kt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
