package resp

const (
	CodeBadRequest    = "bad_request"
	CodeNotFound      = "not_found"
	CodeConflict      = "conflict"
	CodeNoSession     = "no_session"
	CodeInternalError = "internal_error"
	CodeQueued        = "queued"
)
