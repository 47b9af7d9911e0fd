package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// SettingUseCase casos de uso del almacén global clave→valor. El valor es
// libre: el servidor no impone tipado (la clasificación "tipo de setting"
// vive solo en la UI).
type SettingUseCase struct {
	repo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{repo: repo}
}

// Create valida y persiste un setting nuevo; la clave debe ser única.
func (uc *SettingUseCase) Create(in dto.CreateSettingRequest) (*dto.SettingResponse, error) {
	v := domain.NewValidation()
	if strings.TrimSpace(in.Key) == "" {
		v.AddRequired("key")
	}
	if len(in.Value) == 0 {
		v.AddRequired("value")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	existing, _ := uc.repo.GetByKey(in.Key)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	setting := &entity.Setting{
		ID:        uuid.New().String(),
		Key:       in.Key,
		Value:     in.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(setting); err != nil {
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// GetByID obtiene un setting por ID.
func (uc *SettingUseCase) GetByID(id string) (*dto.SettingResponse, error) {
	setting, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrNotFound
	}
	return toSettingResponse(setting), nil
}

// List lista settings con búsqueda por clave y paginación.
func (uc *SettingUseCase) List(search string, page dto.PageQuery) ([]dto.SettingResponse, int, error) {
	list, total, err := uc.repo.List(search, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.SettingResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSettingResponse(s))
	}
	return items, total, nil
}

// Map devuelve todos los settings aplanados a {clave: valor}, para que el
// cliente los cargue en una sola petición.
func (uc *SettingUseCase) Map() (dto.SettingsMap, error) {
	list, err := uc.repo.All()
	if err != nil {
		return nil, err
	}
	m := make(dto.SettingsMap, len(list))
	for _, s := range list {
		m[s.Key] = s.Value
	}
	return m, nil
}

// Update aplica cambios parciales a un setting.
func (uc *SettingUseCase) Update(id string, in dto.UpdateSettingRequest) (*dto.SettingResponse, error) {
	setting, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrNotFound
	}

	if in.Key != nil && *in.Key != setting.Key {
		if strings.TrimSpace(*in.Key) == "" {
			v := domain.NewValidation()
			v.Add("key", "la clave no puede quedar vacía")
			return nil, v.Err()
		}
		existing, _ := uc.repo.GetByKey(*in.Key)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		setting.Key = *in.Key
	}
	if len(in.Value) > 0 {
		setting.Value = in.Value
	}
	setting.UpdatedAt = time.Now()

	if err := uc.repo.Update(setting); err != nil {
		return nil, err
	}
	return toSettingResponse(setting), nil
}

// Delete elimina un setting por ID.
func (uc *SettingUseCase) Delete(id string) error {
	setting, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if setting == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toSettingResponse(s *entity.Setting) *dto.SettingResponse {
	if s == nil {
		return nil
	}
	return &dto.SettingResponse{
		ID:        s.ID,
		Key:       s.Key,
		Value:     s.Value,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
