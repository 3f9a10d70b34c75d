package domain

import "errors"

var (
	// ErrTransportFailure - сетевая ошибка или ответ с неуспешным HTTP-статусом
	ErrTransportFailure = errors.New("transport failure")
	// ErrMalformedResponse - тело ответа не является JSON-документом
	ErrMalformedResponse = errors.New("malformed response")
	// ErrLoopAborted - цикл пагинации прерван, результат неполный
	ErrLoopAborted = errors.New("pagination loop aborted")

	ErrInvalidChannel        = errors.New("invalid channel")
	ErrInvalidExcludePattern = errors.New("invalid exclude keyword pattern")
	ErrEmptyListingID        = errors.New("listing id is required")
)
