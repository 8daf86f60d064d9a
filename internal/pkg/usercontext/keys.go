package usercontext

// Locals keys shared between the middleware and controllers.
const (
	KeyUserContext = "USER_CONTEXT"
)

// Session keys written by the auth controller after an OAuth callback.
const (
	SessionKeyEmail = "customer_email"
	SessionKeyName  = "customer_name"
)
