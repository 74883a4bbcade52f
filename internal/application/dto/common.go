package dto

// ErrorResponse cuerpo de error HTTP con código estable para el cliente.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
