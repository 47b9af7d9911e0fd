package usecase_test

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

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

// fakeUserRepo emula la persistencia de users + user_profiles. failProfile
// simula el fallo de la segunda tabla después de escribir la primera, el
// escenario que la transacción debe revertir completo.
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
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByCompany(companyID, search, role string, limit, offset int) ([]*entity.User, int, error) {
	var list []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			list = append(list, &cp)
		}
	}
	return list, len(list), nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	if r.failProfile {
		return errors.New("update user profile: fallo simulado")
	}
	return nil
}

func (r *fakeUserRepo) Delete(companyID, id string) error {
	u, ok := r.users[id]
	if ok && u.CompanyID == companyID {
		delete(r.users, id)
	}
	return nil
}

func (r *fakeUserRepo) ListAvatarsByCompany(companyID string) ([]string, error) {
	var avatars []string
	for _, u := range r.users {
		if u.CompanyID == companyID && u.Profile.Avatar != nil {
			avatars = append(avatars, *u.Profile.Avatar)
		}
	}
	return avatars, nil
}

func (r *fakeUserRepo) DeleteByCompany(companyID string) error {
	for id, u := range r.users {
		if u.CompanyID == companyID {
			delete(r.users, id)
		}
	}
	return nil
}

func (r *fakeUserRepo) snapshot() map[string]*entity.User {
	s := make(map[string]*entity.User, len(r.users))
	for id, u := range r.users {
		cp := *u
		s[id] = &cp
	}
	return s
}

// fakeUserTx emula la transacción: si el callback falla, restaura el estado
// previo (rollback).
type fakeUserTx struct {
	repo  *fakeUserRepo
	calls int
}

func (r *fakeUserTx) RunUserWrite(ctx context.Context, fn func(
	userRepo repository.UserRepository,
) error) error {
	r.calls++
	before := r.repo.snapshot()
	if err := fn(r.repo); err != nil {
		r.repo.users = before
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func avatarDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("avatar-bytes"))
}

type userFixture struct {
	uc        *usecase.UserUseCase
	repo      *fakeUserRepo
	tx        *fakeUserTx
	publicDir string
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	repo := newFakeUserRepo()
	tx := &fakeUserTx{repo: repo}
	publicDir := t.TempDir()
	return &userFixture{
		uc:        usecase.NewUserUseCase(tx, repo, storage.NewImageStore(publicDir)),
		repo:      repo,
		tx:        tx,
		publicDir: publicDir,
	}
}

func (f *userFixture) fileExists(rel string) bool {
	_, err := os.Stat(filepath.Join(f.publicDir, rel))
	return err == nil
}

func (f *userFixture) validCreate() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Email:    "ana@empresa.com",
		Password: "secreto123",
		Name:     "Ana Gómez",
		Avatar:   avatarDataURI(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_OK(t *testing.T) {
	f := newUserFixture(t)

	out, err := f.uc.Create(context.Background(), companyA, f.validCreate())
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCompany, out.Role, "rol por defecto company")
	assert.Equal(t, "active", out.Status)
	require.NotNil(t, out.Profile.Avatar)
	assert.True(t, f.fileExists(*out.Profile.Avatar))
	assert.Equal(t, 1, f.tx.calls, "el alta pasa por la transacción")
}

func TestUserCreate_FalloDePerfil_RevierteUsuarioYAvatar(t *testing.T) {
	f := newUserFixture(t)
	f.repo.failProfile = true

	_, err := f.uc.Create(context.Background(), companyA, f.validCreate())
	require.Error(t, err)

	// La transacción revierte la fila de usuario ya escrita: no debe quedar
	// un usuario huérfano sin perfil.
	persisted, _ := f.repo.FindByEmail("ana@empresa.com")
	assert.Nil(t, persisted, "el usuario no debe persistirse si el perfil falla")

	entries, _ := os.ReadDir(filepath.Join(f.publicDir, "images", "profiles"))
	assert.Empty(t, entries, "el avatar escrito antes de la transacción se elimina")
}

func TestUserCreate_EmailDuplicado_Conflicto(t *testing.T) {
	f := newUserFixture(t)
	_, err := f.uc.Create(context.Background(), companyA, f.validCreate())
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), companyA, f.validCreate())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_PasaPorTransaccion(t *testing.T) {
	f := newUserFixture(t)
	created, err := f.uc.Create(context.Background(), companyA, f.validCreate())
	require.NoError(t, err)
	callsAfterCreate := f.tx.calls

	name := "Ana María"
	out, err := f.uc.Update(context.Background(), companyA, created.ID, dto.UpdateUserRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Ana María", out.Profile.Name)
	assert.Equal(t, callsAfterCreate+1, f.tx.calls)
}

func TestUserUpdate_FalloDePerfil_ConservaAvatarNuevoFuera(t *testing.T) {
	f := newUserFixture(t)
	created, err := f.uc.Create(context.Background(), companyA, f.validCreate())
	require.NoError(t, err)
	oldAvatar := *created.Profile.Avatar

	f.repo.failProfile = true
	newAvatar := avatarDataURI()
	_, err = f.uc.Update(context.Background(), companyA, created.ID, dto.UpdateUserRequest{Avatar: &newAvatar})
	require.Error(t, err)

	// Rollback: la fila conserva el avatar anterior y el archivo nuevo se
	// elimina; el anterior sigue en disco.
	persisted, _ := f.repo.GetByID(companyA, created.ID)
	require.NotNil(t, persisted)
	require.NotNil(t, persisted.Profile.Avatar)
	assert.Equal(t, oldAvatar, *persisted.Profile.Avatar)
	assert.True(t, f.fileExists(oldAvatar))

	entries, _ := os.ReadDir(filepath.Join(f.publicDir, "images", "profiles"))
	assert.Len(t, entries, 1, "solo el avatar original debe quedar en disco")
}

func TestUserDelete_EliminaFilaYAvatar(t *testing.T) {
	f := newUserFixture(t)
	created, err := f.uc.Create(context.Background(), companyA, f.validCreate())
	require.NoError(t, err)
	avatar := *created.Profile.Avatar

	require.NoError(t, f.uc.Delete(context.Background(), companyA, created.ID))

	persisted, _ := f.repo.GetByID(companyA, created.ID)
	assert.Nil(t, persisted)
	assert.False(t, f.fileExists(avatar))
}

func TestUserDelete_OtraEmpresa_NotFound(t *testing.T) {
	f := newUserFixture(t)
	created, err := f.uc.Create(context.Background(), companyA, f.validCreate())
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), companyB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
