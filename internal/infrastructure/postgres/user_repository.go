package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, first_surname, second_surname, dni, phone,
		address, city, province, country, postal_code, accepted_terms, accepted_terms_at,
		is_active, is_staff, created_at, updated_at`

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var secondSurname *string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.FirstSurname, &secondSurname,
		&u.DNI, &u.Phone, &u.Address, &u.City, &u.Province, &u.Country, &u.PostalCode,
		&u.AcceptedTerms, &u.AcceptedTermsAt, &u.IsActive, &u.IsStaff, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if secondSurname != nil {
		u.SecondSurname = *secondSurname
	}
	return &u, nil
}

// Create persiste un usuario nuevo (email único).
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, first_surname, second_surname, dni, phone,
			address, city, province, country, postal_code, accepted_terms, accepted_terms_at,
			is_active, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.FirstSurname,
		nullable(user.SecondSurname), user.DNI, user.Phone, user.Address, user.City,
		user.Province, user.Country, user.PostalCode, user.AcceptedTerms, user.AcceptedTermsAt,
		user.IsActive, user.IsStaff, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (único).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Update actualiza los campos de perfil de un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET name = $2, first_surname = $3, second_surname = $4, phone = $5,
			address = $6, city = $7, province = $8, country = $9, postal_code = $10,
			is_active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.FirstSurname, nullable(user.SecondSurname), user.Phone,
		user.Address, user.City, user.Province, user.Country, user.PostalCode,
		user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
