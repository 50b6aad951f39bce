package entity

import "time"

// User cuenta de acceso basada en email (sin username).
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	Name            string // nombre
	FirstSurname    string // primer apellido
	SecondSurname   string // segundo apellido (opcional)
	DNI             string
	Phone           string
	Address         string
	City            string
	Province        string
	Country         string
	PostalCode      string
	AcceptedTerms   bool
	AcceptedTermsAt *time.Time
	IsActive        bool
	IsStaff         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName nombre completo con fallback al email.
func (u *User) FullName() string {
	full := u.Name
	if u.FirstSurname != "" {
		full += " " + u.FirstSurname
	}
	if u.SecondSurname != "" {
		full += " " + u.SecondSurname
	}
	if full == "" {
		return u.Email
	}
	return full
}
