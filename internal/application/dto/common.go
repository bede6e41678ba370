package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListQuery parámetros comunes de listados.
type ListQuery struct {
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
	Status string `query:"status" validate:"omitempty,oneof=Pending Received Cancelled"`
}
