package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con
// pool o tx). El perfil vive en user_profiles (1:1) y siempre se lee con
// LEFT JOIN; las escrituras tocan ambas tablas.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT u.id, u.company_id, u.email, u.password_hash, u.role, u.status,
	       COALESCE(p.name, ''), COALESCE(p.phone, ''), p.avatar,
	       u.created_at, u.updated_at
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id`

func scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
		&u.Profile.Name, &u.Profile.Phone, &u.Profile.Avatar,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste usuario + perfil.
func (r *UserRepo) Create(user *entity.User) error {
	ctx := context.Background()
	query := `
		INSERT INTO users (id, company_id, email, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.Email, user.PasswordHash,
		user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	profileQuery := `
		INSERT INTO user_profiles (user_id, name, phone, avatar)
		VALUES ($1, $2, $3, $4)`
	_, err = r.q.Exec(ctx, profileQuery,
		user.ID, user.Profile.Name, user.Profile.Phone, user.Profile.Avatar,
	)
	if err != nil {
		return fmt.Errorf("insert user profile: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario de la empresa por ID.
func (r *UserRepo) GetByID(companyID, id string) (*entity.User, error) {
	query := userSelect + ` WHERE u.company_id = $1 AND u.id = $2`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// FindByEmail busca un usuario por email en toda la plataforma (login).
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := userSelect + ` WHERE u.email = $1`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// GetByEmailAndCompany busca un usuario por email dentro de la empresa.
func (r *UserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	query := userSelect + ` WHERE u.email = $1 AND u.company_id = $2`
	u, err := scanUser(r.q.QueryRow(context.Background(), query, email, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email+company: %w", err)
	}
	return u, nil
}

// ListByCompany lista usuarios de la empresa con búsqueda por nombre de
// perfil/email/teléfono, filtro opcional por rol y paginación.
func (r *UserRepo) ListByCompany(companyID, search, role string, limit, offset int) ([]*entity.User, int, error) {
	ctx := context.Background()
	where := ` WHERE u.company_id = $1`
	args := []any{companyID}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (p.name ILIKE $%d OR u.email ILIKE $%d OR p.phone ILIKE $%d)`, n, n, n)
	}
	if role != "" {
		args = append(args, role)
		where += fmt.Sprintf(` AND u.role = $%d`, len(args))
	}

	countQuery := `SELECT COUNT(*) FROM users u LEFT JOIN user_profiles p ON p.user_id = u.id` + where
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, limit, offset)
	query := userSelect + where +
		fmt.Sprintf(` ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Update actualiza usuario + perfil.
func (r *UserRepo) Update(user *entity.User) error {
	ctx := context.Background()
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, role = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Role, user.Status, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	profileQuery := `
		UPDATE user_profiles SET name = $2, phone = $3, avatar = $4
		WHERE user_id = $1`
	_, err = r.q.Exec(ctx, profileQuery,
		user.ID, user.Profile.Name, user.Profile.Phone, user.Profile.Avatar,
	)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return nil
}

// Delete elimina un usuario de la empresa (perfil primero por la FK).
func (r *UserRepo) Delete(companyID, id string) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`DELETE FROM user_profiles WHERE user_id IN (SELECT id FROM users WHERE company_id = $1 AND id = $2)`,
		companyID, id)
	if err != nil {
		return fmt.Errorf("delete user profile: %w", err)
	}
	_, err = r.q.Exec(ctx, `DELETE FROM users WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListAvatarsByCompany devuelve las rutas de avatar no nulas del tenant.
func (r *UserRepo) ListAvatarsByCompany(companyID string) ([]string, error) {
	query := `
		SELECT p.avatar
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.company_id = $1 AND p.avatar IS NOT NULL`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list avatars: %w", err)
	}
	defer rows.Close()

	var avatars []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan avatar: %w", err)
		}
		avatars = append(avatars, a)
	}
	return avatars, rows.Err()
}

// DeleteByCompany elimina todos los usuarios y perfiles del tenant.
func (r *UserRepo) DeleteByCompany(companyID string) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`DELETE FROM user_profiles WHERE user_id IN (SELECT id FROM users WHERE company_id = $1)`,
		companyID)
	if err != nil {
		return fmt.Errorf("delete profiles by company: %w", err)
	}
	_, err = r.q.Exec(ctx, `DELETE FROM users WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("delete users by company: %w", err)
	}
	return nil
}
