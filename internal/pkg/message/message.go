package message

const (
	InvalidUser     = "Invalid username/password."
	InvalidInput    = "Invalid input."
	Unauthenticated = "Authentication required."
	LookupFailed    = "Unable to load the authenticated user."
	LoggedIn        = "Logged in."
	LoggedOut       = "Logged out."
)
