package handler

import "net/http"

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userIDRequest struct {
	UserID string `json:"userId"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// --- Error envelopes ---

// apiError is the envelope for business and upstream failures.
type apiError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// validationErrorBody is the contract shape for structural violations:
// one entry in Message per failed rule.
type validationErrorBody struct {
	StatusCode int      `json:"statusCode"`
	Message    []string `json:"message"`
	Error      string   `json:"error"`
}

func bindErrorBody() validationErrorBody {
	return validationErrorBody{
		StatusCode: http.StatusBadRequest,
		Message:    []string{"invalid request body"},
		Error:      "Bad Request",
	}
}
