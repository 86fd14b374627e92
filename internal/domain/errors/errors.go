package errors

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrItemTypeNotFound       = errors.New("item type not found")
	ErrItemNotFoundInOrder    = errors.New("item not found in order")
	ErrUnsupportedAspectRatio = errors.New("unsupported aspect ratio")
	ErrPaymentDeclined        = errors.New("payment declined")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrEmptyUpload            = errors.New("upload contains no images")
)
