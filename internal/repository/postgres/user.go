package postgres

import (
	"context"
	"database/sql"

	"rentloop-backend/internal/domain"
	"rentloop-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, name, is_admin, created_on FROM users WHERE id = $1`
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.IsAdmin, &u.CreatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}
