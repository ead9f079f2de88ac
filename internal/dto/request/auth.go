package request

// RegisterRequest is the registration form. Only these fields are accepted.
type RegisterRequest struct {
	Name     string `form:"name" validate:"required,notblank,max=10"`
	Email    string `form:"email" validate:"required,notblank,max=255,email_shape"`
	Password string `form:"password" validate:"required"`
}

// LoginRequest is deliberately not validated field by field: any failure is
// reported with the same generic message.
type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// ClientInfo is recorded on the server-side session row.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
