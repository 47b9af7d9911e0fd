package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercia-api/internal/application/auth"
	"github.com/jhoicas/Comercia-api/internal/application/dto"
	"github.com/jhoicas/Comercia-api/internal/domain"
	"github.com/jhoicas/Comercia-api/internal/domain/entity"
	"github.com/jhoicas/Comercia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users       map[string]*entity.User
	failProfile bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	if r.failProfile {
		return errors.New("insert user profile: fallo simulado")
	}
	return nil
}

func (r *fakeUserRepo) GetByID(companyID, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok || u.CompanyID != companyID {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(companyID, search, role string, limit, offset int) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error { return nil }

func (r *fakeUserRepo) Delete(companyID, id string) error { return nil }

func (r *fakeUserRepo) ListAvatarsByCompany(companyID string) ([]string, error) { return nil, nil }

func (r *fakeUserRepo) DeleteByCompany(companyID string) error { return nil }

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(*entity.Company) error { return nil }

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCompanyRepo) List(search, planStatus string, limit, offset int) ([]*entity.Company, int, error) {
	return nil, 0, nil
}

func (r *fakeCompanyRepo) Update(*entity.Company) error { return nil }

func (r *fakeCompanyRepo) Delete(id string) error { return nil }

// fakeUserTx emula la transacción: si el callback falla, restaura el estado
// previo (rollback).
type fakeUserTx struct {
	repo *fakeUserRepo
}

func (r *fakeUserTx) RunUserWrite(ctx context.Context, fn func(
	userRepo repository.UserRepository,
) error) error {
	before := make(map[string]*entity.User, len(r.repo.users))
	for id, u := range r.repo.users {
		cp := *u
		before[id] = &cp
	}
	if err := fn(r.repo); err != nil {
		r.repo.users = before
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testCompanyID = "empresa-1"

func newAuthFixture() (*auth.AuthUseCase, *fakeUserRepo) {
	users := newFakeUserRepo()
	companies := &fakeCompanyRepo{companies: map[string]*entity.Company{
		testCompanyID: {ID: testCompanyID, Name: "Comercia SL"},
	}}
	uc := auth.NewAuthUseCase(&fakeUserTx{repo: users}, users, companies, auth.JWTConfig{
		Secret:     "secreto-de-test",
		ExpMinutes: 60,
		Issuer:     "comercia-api-test",
	})
	return uc, users
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		CompanyID: testCompanyID,
		Email:     "ana@empresa.com",
		Password:  "secreto123",
		Name:      "Ana",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_OK(t *testing.T) {
	uc, users := newAuthFixture()

	out, err := uc.RegisterUser(context.Background(), validRegister())
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCompany, out.Role, "rol por defecto company")
	assert.Equal(t, "active", out.Status)
	persisted, _ := users.FindByEmail("ana@empresa.com")
	require.NotNil(t, persisted)
	assert.NotEqual(t, "secreto123", persisted.PasswordHash, "el password se persiste hasheado")
}

func TestRegisterUser_FalloDePerfil_RevierteUsuario(t *testing.T) {
	uc, users := newAuthFixture()
	users.failProfile = true

	_, err := uc.RegisterUser(context.Background(), validRegister())
	require.Error(t, err)

	persisted, _ := users.FindByEmail("ana@empresa.com")
	assert.Nil(t, persisted, "la transacción revierte la fila de usuario si el perfil falla")
}

func TestRegisterUser_EmailDuplicado_Conflicto(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), validRegister())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_EmpresaInexistente_NotFound(t *testing.T) {
	uc, _ := newAuthFixture()
	in := validRegister()
	in.CompanyID = "no-existe"

	_, err := uc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_PasswordIncorrecto_Unauthorized(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@empresa.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_OK_GeneraToken(t *testing.T) {
	uc, _ := newAuthFixture()
	_, err := uc.RegisterUser(context.Background(), validRegister())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@empresa.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@empresa.com", out.User.Email)
}
