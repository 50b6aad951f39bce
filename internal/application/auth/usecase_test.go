package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pab-api/internal/application/dto"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
)

// fakeUserRepo repositorio de usuarios en memoria.
type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	return nil
}

func newTestAuthUseCase() (*AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, JWTConfig{Secret: "secreto-de-pruebas", ExpMinutes: 60, Issuer: "pab-api"})
	return uc, repo
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newTestAuthUseCase()

	reg, err := uc.Register(dto.RegisterRequest{
		Email:         "ana@example.com",
		Password:      "s3cr3ta!",
		Name:          "Ana",
		FirstSurname:  "García",
		AcceptedTerms: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token) // el registro deja la sesión iniciada
	assert.Equal(t, "Ana García", reg.User.FullName)
	assert.True(t, reg.User.IsActive)

	login, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "s3cr3ta!"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newTestAuthUseCase()

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "s3cr3ta!"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, repo := newTestAuthUseCase()

	reg, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "s3cr3ta!"})
	require.NoError(t, err)

	// Password incorrecta.
	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario inexistente: mismo error, sin filtrar cuál de los dos falló.
	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "s3cr3ta!"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Usuario desactivado.
	u := repo.byID[reg.User.ID]
	u.IsActive = false
	repo.byEmail[u.Email] = u
	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "s3cr3ta!"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProfileYUpdateProfile(t *testing.T) {
	uc, _ := newTestAuthUseCase()

	reg, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "s3cr3ta!", Name: "Ana"})
	require.NoError(t, err)

	profile, err := uc.Profile(reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)

	ciudad := "Sevilla"
	updated, err := uc.UpdateProfile(reg.User.ID, dto.UpdateProfileRequest{City: &ciudad})
	require.NoError(t, err)
	assert.Equal(t, "Sevilla", updated.City)
	assert.Equal(t, "Ana", updated.Name) // campo no enviado se conserva

	_, err = uc.Profile("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
