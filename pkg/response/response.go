package response

import "net/http"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var EmptyRequestBodyResponse = Response{
	Status:     StatusError,
	StatusCode: http.StatusBadRequest,
	Error:      "Empty Request Body",
	Message:    "Request body is empty. Please provide necessary data.",
}

var BadRequestResponse = Response{
	Status:     StatusError,
	StatusCode: http.StatusBadRequest,
	Error:      "Bad Request",
	Message:    "Request body is malformed.",
}

var ConflictResponse = Response{
	Status:     StatusError,
	StatusCode: http.StatusConflict,
	Error:      "Submission In Progress",
	Message:    "A submission is already in progress. Please wait for it to finish.",
}

var TooManyRequestsResponse = Response{
	Status:     StatusError,
	StatusCode: http.StatusTooManyRequests,
	Error:      "Too Many Requests",
	Message:    "Rate limit exceeded. Please try again later.",
}

var ServerErrorResponse = Response{
	Status:     StatusError,
	StatusCode: http.StatusInternalServerError,
	Error:      "Server Error",
	Message:    "An internal server error occurred. Please try again later.",
}

type Response struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message"`
	Details    []any  `json:"details,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func SuccessResponse(statusCode int, msg string, data ...any) Response {
	resp := Response{
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Message:    msg,
	}

	if len(data) > 0 {
		resp.Data = data[0]
	}

	return resp
}

// InputIssue describes why a submitted field was rejected.
type InputIssue struct {
	Field string `json:"field"`
	Value any    `json:"value"`
	Issue string `json:"issue"`
}

// InvalidInputResponse reports a rejected form field.
func InvalidInputResponse(field string, value any, issue string) Response {
	return Response{
		Status:     StatusError,
		StatusCode: http.StatusBadRequest,
		Error:      "Invalid Input",
		Message:    issue,
		Details: []any{InputIssue{
			Field: field,
			Value: value,
			Issue: issue,
		}},
	}
}

// BackendErrorResponse reports a failed backend call. msg is surfaced to the
// user; fields, when present, are the backend's own error body.
func BackendErrorResponse(msg string, fields map[string]any) Response {
	resp := Response{
		Status:     StatusError,
		StatusCode: http.StatusBadGateway,
		Error:      "Backend Error",
		Message:    msg,
	}

	if len(fields) > 0 {
		resp.Details = []any{fields}
	}

	return resp
}

// NotFoundResponse reports a resource the backend does not know.
func NotFoundResponse(msg string) Response {
	return Response{
		Status:     StatusError,
		StatusCode: http.StatusNotFound,
		Error:      "Resource Not Found",
		Message:    msg,
	}
}
