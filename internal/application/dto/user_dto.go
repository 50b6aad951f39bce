package dto

import "time"

// RegisterRequest entrada para registro (auth). Los campos de dirección son
// opcionales; email y password son obligatorios.
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"nombre"`
	FirstSurname  string `json:"primer_apellido"`
	SecondSurname string `json:"segundo_apellido"`
	DNI           string `json:"dni"`
	Phone         string `json:"phone"`
	Address       string `json:"direccion"`
	City          string `json:"ciudad"`
	Province      string `json:"provincia"`
	Country       string `json:"pais"`
	PostalCode    string `json:"codigo_postal"`
	AcceptedTerms bool   `json:"accepted_terms"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"nombre"`
	FirstSurname  string    `json:"primer_apellido"`
	SecondSurname string    `json:"segundo_apellido,omitempty"`
	FullName      string    `json:"nombre_completo"`
	DNI           string    `json:"dni,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"direccion,omitempty"`
	City          string    `json:"ciudad,omitempty"`
	Province      string    `json:"provincia,omitempty"`
	Country       string    `json:"pais,omitempty"`
	PostalCode    string    `json:"codigo_postal,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginRequest entrada para login con email.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"access"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest edición parcial del perfil del usuario autenticado.
// Punteros nil = campo sin tocar.
type UpdateProfileRequest struct {
	Name          *string `json:"nombre"`
	FirstSurname  *string `json:"primer_apellido"`
	SecondSurname *string `json:"segundo_apellido"`
	Phone         *string `json:"phone"`
	Address       *string `json:"direccion"`
	City          *string `json:"ciudad"`
	Province      *string `json:"provincia"`
	Country       *string `json:"pais"`
	PostalCode    *string `json:"codigo_postal"`
}
