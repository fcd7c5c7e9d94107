package handler

import "github.com/levelup/levelup-backend/internal/core/ports"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	RUN          string `json:"run"              validate:"required"`
	Name         string `json:"nombre"           validate:"required"`
	Surname      string `json:"apellidos"        validate:"required"`
	Email        string `json:"correo"           validate:"required"`
	Password     string `json:"password"         validate:"required,min=6"`
	BirthDate    string `json:"fechaNacimiento"`
	Region       string `json:"region"`
	Commune      string `json:"comuna"`
	Address      string `json:"direccion"`
	ReferralCode string `json:"codigoReferido"`
}

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"tokenType"`
	User      *ports.Profile `json:"user"`
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Token:     r.Token,
		TokenType: r.TokenType,
		User:      r.User,
	}
}
