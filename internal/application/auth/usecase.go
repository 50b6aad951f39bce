package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pab-api/internal/application/dto"
	"github.com/jhoicas/pab-api/internal/domain"
	"github.com/jhoicas/pab-api/internal/domain/entity"
	"github.com/jhoicas/pab-api/internal/domain/repository"
	"github.com/jhoicas/pab-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt, persiste y devuelve
// usuario + token (el registro deja la sesión iniciada, como en el cliente
// web). Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.LoginResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		Email:         in.Email,
		PasswordHash:  string(hash),
		Name:          in.Name,
		FirstSurname:  in.FirstSurname,
		SecondSurname: in.SecondSurname,
		DNI:           in.DNI,
		Phone:         in.Phone,
		Address:       in.Address,
		City:          in.City,
		Province:      in.Province,
		Country:       in.Country,
		PostalCode:    in.PostalCode,
		AcceptedTerms: in.AcceptedTerms,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.AcceptedTerms {
		user.AcceptedTermsAt = &now
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Profile devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Profile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile edición parcial del perfil (campos nil no se tocan).
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.FirstSurname != nil {
		user.FirstSurname = *in.FirstSurname
	}
	if in.SecondSurname != nil {
		user.SecondSurname = *in.SecondSurname
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.City != nil {
		user.City = *in.City
	}
	if in.Province != nil {
		user.Province = *in.Province
	}
	if in.Country != nil {
		user.Country = *in.Country
	}
	if in.PostalCode != nil {
		user.PostalCode = *in.PostalCode
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		FirstSurname:  u.FirstSurname,
		SecondSurname: u.SecondSurname,
		FullName:      u.FullName(),
		DNI:           u.DNI,
		Phone:         u.Phone,
		Address:       u.Address,
		City:          u.City,
		Province:      u.Province,
		Country:       u.Country,
		PostalCode:    u.PostalCode,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
