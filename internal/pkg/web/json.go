package web

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	MimeJSON            = "application/json"
)
