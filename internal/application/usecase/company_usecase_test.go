package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/application/usecase"
	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
	"github.com/jhoicas/Comercia-api/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]*entity.Company{}}
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) List(search, planStatus string, limit, offset int) ([]*entity.Company, int, error) {
	var list []*entity.Company
	for _, c := range r.companies {
		cp := *c
		list = append(list, &cp)
	}
	return list, len(list), nil
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) Delete(id string) error {
	delete(r.companies, id)
	return nil
}

// fakeTenantTx ejecuta la cascada con los fakes; si el callback falla,
// restaura el estado previo de ambos repos (rollback).
type fakeTenantTx struct {
	companyRepo *fakeCompanyRepo
	userRepo    *fakeUserRepo
}

func (r *fakeTenantTx) RunTenantDelete(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	companiesBefore := make(map[string]*entity.Company, len(r.companyRepo.companies))
	for id, c := range r.companyRepo.companies {
		cp := *c
		companiesBefore[id] = &cp
	}
	usersBefore := r.userRepo.snapshot()

	if err := fn(r.companyRepo, r.userRepo); err != nil {
		r.companyRepo.companies = companiesBefore
		r.userRepo.users = usersBefore
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type companyFixture struct {
	uc        *usecase.CompanyUseCase
	userUC    *usecase.UserUseCase
	companies *fakeCompanyRepo
	users     *fakeUserRepo
	publicDir string
}

func newCompanyFixture(t *testing.T) *companyFixture {
	t.Helper()
	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	tenantTx := &fakeTenantTx{companyRepo: companies, userRepo: users}
	userTx := &fakeUserTx{repo: users}
	publicDir := t.TempDir()
	store := storage.NewImageStore(publicDir)
	return &companyFixture{
		uc:        usecase.NewCompanyUseCase(companies, users, tenantTx, store),
		userUC:    usecase.NewUserUseCase(userTx, users, store),
		companies: companies,
		users:     users,
		publicDir: publicDir,
	}
}

func (f *companyFixture) fileExists(rel string) bool {
	_, err := os.Stat(filepath.Join(f.publicDir, rel))
	return err == nil
}

// seedTenant crea una empresa con logo y dos usuarios con avatar en disco.
func seedTenant(t *testing.T, f *companyFixture) (companyID string, userIDs []string, files []string) {
	t.Helper()
	company, err := f.uc.Create(dto.CreateCompanyRequest{
		Name:  "Comercia SL",
		Email: "info@comercia.com",
		Logo:  avatarDataURI(),
	})
	require.NoError(t, err)
	require.NotNil(t, company.Logo)
	files = append(files, *company.Logo)

	for _, name := range []string{"Ana", "Luis"} {
		user, err := f.userUC.Create(context.Background(), company.ID, dto.CreateUserRequest{
			Email:    name + "@comercia.com",
			Password: "secreto123",
			Name:     name,
			Avatar:   avatarDataURI(),
		})
		require.NoError(t, err)
		userIDs = append(userIDs, user.ID)
		files = append(files, *user.Profile.Avatar)
	}
	return company.ID, userIDs, files
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyDelete_CascadaDeUsuarios(t *testing.T) {
	f := newCompanyFixture(t)
	companyID, userIDs, files := seedTenant(t, f)

	require.NoError(t, f.uc.Delete(context.Background(), companyID))

	_, err := f.uc.GetByID(companyID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "la empresa no debe existir tras el borrado")

	for _, id := range userIDs {
		_, err := f.userUC.GetByID(companyID, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "los usuarios del tenant caen en cascada")
	}

	for _, rel := range files {
		assert.False(t, f.fileExists(rel), "logo y avatares se eliminan del storage")
	}
}

func TestCompanyDelete_NoTocaOtrosTenants(t *testing.T) {
	f := newCompanyFixture(t)
	companyID, _, _ := seedTenant(t, f)

	other, err := f.uc.Create(dto.CreateCompanyRequest{Name: "Otra SA"})
	require.NoError(t, err)
	otherUser, err := f.userUC.Create(context.Background(), other.ID, dto.CreateUserRequest{
		Email:    "eva@otra.com",
		Password: "secreto123",
		Name:     "Eva",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), companyID))

	_, err = f.uc.GetByID(other.ID)
	assert.NoError(t, err)
	_, err = f.userUC.GetByID(other.ID, otherUser.ID)
	assert.NoError(t, err, "los usuarios de otras empresas no se ven afectados")
}

func TestCompanyDelete_FalloEnCascada_RevierteTodo(t *testing.T) {
	f := newCompanyFixture(t)
	companyID, userIDs, files := seedTenant(t, f)

	// El fallo ocurre después de borrar los usuarios dentro de la
	// transacción: el rollback debe dejar usuarios y empresa intactos.
	tx := &fakeTenantTx{companyRepo: f.companies, userRepo: f.users}
	err := tx.RunTenantDelete(context.Background(), func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error {
		if err := userRepo.DeleteByCompany(companyID); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	// Rollback: empresa y usuarios intactos, archivos intactos.
	_, err = f.uc.GetByID(companyID)
	assert.NoError(t, err)
	for _, id := range userIDs {
		_, err := f.userUC.GetByID(companyID, id)
		assert.NoError(t, err)
	}
	for _, rel := range files {
		assert.True(t, f.fileExists(rel))
	}
}

func TestCompanyDelete_Inexistente_NotFound(t *testing.T) {
	f := newCompanyFixture(t)
	err := f.uc.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
