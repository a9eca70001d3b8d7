package resp

const (
	CodeOK            = "ok"
	CodeAccepted      = "accepted"
	CodeBadRequest    = "bad_request"
	CodeNotFound      = "not_found"
	CodeInvalidData   = "invalid_data"
	CodeRequestFailed = "request_failed"
	CodeTimeout       = "timeout"
	CodeInternalError = "internal_error"
)
