package middleware

import "github.com/billcore/backend/internal/interfaces/http/dto"

// ValidationErrorResponse is the envelope the validation tests decode
// responses into
type ValidationErrorResponse = dto.Response
