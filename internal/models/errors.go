package models

import (
	"errors"
)

var (
	ErrGeneral               = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound      = errors.New("there is no")
	ErrEnvelopeNameNotUnique = errors.New("the envelope name must be unique")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
)
