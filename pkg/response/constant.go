package response

const (
	MessageSuccess = "Success"

	DefaultErrorMessage = "Something went wrong"

	DateTimeFormat = "2006-01-02 15:04:05"
)

// Error codes carried in Resp.ErrorCode.
const (
	ValidationErrorCode     = 1
	UnauthorizedCode        = 401
	ForbiddenCode           = 403
	NotFoundCode            = 404
	ConflictCode            = 409
	TooManyRequestsCode     = 429
	InternalServerErrorCode = 500
	ServiceUnavailableCode  = 503
)
