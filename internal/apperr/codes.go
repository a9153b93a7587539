package apperr

// Stable error codes returned in the "code" field of failure responses.
const (
	CodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	CodeInvalidRequestQuery  = "INVALID_REQUEST_QUERY_PARAMETERS"
	CodeInvalidRequestParams = "INVALID_REQUEST_URL_PARAMETERS"
	CodeUnhandledException   = "UNHANDLED_EXCEPTION"

	CodeNoToken         = "NO_TOKEN"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"

	CodeAuthorNotFound   = "AUTHOR_NOT_FOUND"
	CodeAuthorNameExists = "AUTHOR_NAME_EXISTS"
	CodeAuthorHasBooks   = "AUTHOR_HAS_BOOKS"

	CodeBookNotFound       = "BOOK_NOT_FOUND"
	CodeBookAuthorNotFound = "BOOK_AUTHOR_NOT_FOUND"

	CodeUserExists         = "AUTH_USER_EXISTS"
	CodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"

	CodeNoFileUploaded  = "NO_FILE_UPLOADED"
	CodeInvalidFileType = "INVALID_FILE_TYPE"
	CodeFileTooLarge    = "FILE_TOO_LARGE"

	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// Fixed messages for the validation and unhandled kinds.
const (
	MessageInvalidBody   = "Invalid request body. Please check the provided data."
	MessageInvalidQuery  = "Required query parameters in request are either missing or invalid"
	MessageInvalidParams = "Required URL parameters in request are either missing or invalid"
	MessageUnhandled     = "An unexpected server error occurred."
)
