package httperror

// Error is the body of error responses that do not carry data.
type Error struct {
	Message string `json:"error" example:"This HTTP method is not allowed for the endpoint you called"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}
