package v1

import (
	ez_uuid "github.com/envelope-zero/salvadanaio/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// Pagination contains information about the pagination for collection endpoint responses.
type Pagination struct {
	Count  int  `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int  `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int  `json:"total" example:"827"` // The total number of resources matching the query
}

// errorString returns a pointer to the error message for use in responses.
func errorString(err error) *string {
	s := err.Error()
	return &s
}

// highestStatus returns the higher one of the current status and the
// status for err. Create endpoints report the worst status of all resources.
func highestStatus(err error, current int) int {
	if s := status(err); s > current {
		return s
	}
	return current
}
