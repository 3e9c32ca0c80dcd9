package platform

import "net/http"

// HTTPStatus converts a CommandError to an HTTP status code.
// Non-CommandError values map to 500.
func HTTPStatus(err error) int {
	if cmdErr, ok := AsCommandError(err); ok {
		switch cmdErr.Code {
		case StatusInvalidArgument:
			return http.StatusBadRequest
		case StatusFailedPrecondition:
			return http.StatusConflict
		case StatusNotFound:
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}
