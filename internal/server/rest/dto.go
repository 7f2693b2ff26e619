package rest

// registerRequest is the body of POST /api/register.
type registerRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Department string `json:"department"`
}

// loginRequest is the body of POST /api/login.
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type pingResponse struct {
	Status string `json:"status"`
}

const (
	msgRejected         = "You shall not pass!"
	msgUsernameTaken    = "Username is already taken"
	msgInvalidBody      = "username and password are required"
	msgInternalError    = "internal server error"
	msgRouteNotFound    = "not found"
	msgMethodNotAllowed = "method not allowed"
	welcomeMessageFmt   = "Welcome %s!"
)
