package storeconst

const (
	// StorageFeeKey is a key in epoch contract config which contains the fee
	// charged per epoch of an object's initial lifetime.
	StorageFeeKey = "StorageFee"
	// ExtendFeeKey is a key in epoch contract config which contains the fee
	// charged per epoch of an object's lifetime extension.
	ExtendFeeKey = "ExtendFee"

	// CleanupDelta contains the number of epochs an expired object is still
	// kept in the contract storage before the epoch tick cleanup removes it.
	CleanupDelta = 3

	// NotFoundError is returned if the object is missing.
	NotFoundError = "object does not exist"

	// DuplicateError is returned on an attempt to store the same content twice.
	DuplicateError = "object already exists"

	// InsufficientPaymentError is returned when the offered payment limit does
	// not cover the cost of a lifetime extension.
	InsufficientPaymentError = "insufficient payment to extend object lifetime"
)
