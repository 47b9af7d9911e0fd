package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implementación de SettingRepository (usable con pool o tx).
// El valor se persiste como JSONB sin interpretar.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

const settingColumns = `id, key, value, created_at, updated_at`

func scanSetting(row interface{ Scan(dest ...any) error }) (*entity.Setting, error) {
	var s entity.Setting
	err := row.Scan(&s.ID, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un nuevo setting.
func (r *SettingRepo) Create(setting *entity.Setting) error {
	query := `
		INSERT INTO settings (` + settingColumns + `)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		setting.ID, setting.Key, setting.Value, setting.CreatedAt, setting.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert setting: %w", err)
	}
	return nil
}

// GetByID obtiene un setting por ID.
func (r *SettingRepo) GetByID(id string) (*entity.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings WHERE id = $1`
	s, err := scanSetting(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return s, nil
}

// GetByKey obtiene un setting por su clave única.
func (r *SettingRepo) GetByKey(key string) (*entity.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings WHERE key = $1`
	s, err := scanSetting(r.q.QueryRow(context.Background(), query, key))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting by key: %w", err)
	}
	return s, nil
}

// List lista settings con búsqueda por clave y paginación.
func (r *SettingRepo) List(search string, limit, offset int) ([]*entity.Setting, int, error) {
	ctx := context.Background()
	where := ` WHERE 1=1`
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(` AND key ILIKE $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM settings`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count settings: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + settingColumns + ` FROM settings` + where +
		fmt.Sprintf(` ORDER BY key LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Setting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan setting: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// All devuelve todos los settings ordenados por clave (mapa plano).
func (r *SettingRepo) All() ([]*entity.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings ORDER BY key`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("all settings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Setting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza un setting.
func (r *SettingRepo) Update(setting *entity.Setting) error {
	query := `
		UPDATE settings SET key = $2, value = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		setting.ID, setting.Key, setting.Value, setting.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update setting: %w", err)
	}
	return nil
}

// Delete elimina un setting por ID.
func (r *SettingRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM settings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete setting: %w", err)
	}
	return nil
}
