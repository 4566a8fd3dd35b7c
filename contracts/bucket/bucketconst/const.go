package bucketconst

const (
	// UnauthorizedError is returned when the presented capability does not
	// exist, is bound to another bucket or the capability owner signature is
	// missing.
	UnauthorizedError = "capability check failed"

	// NotFoundError is returned if the bucket is missing.
	NotFoundError = "bucket does not exist"

	// DuplicateKeyError is returned on an attempt to reserve a key that is
	// already reserved or filled.
	DuplicateKeyError = "key is already in use"

	// KeyNotReservedError is returned on an attempt to fill a slot that was
	// never reserved.
	KeyNotReservedError = "key is not reserved"

	// AlreadyFilledError is returned on an attempt to fill an occupied slot.
	AlreadyFilledError = "slot is already filled"

	// KeyNotFoundError is returned if there is no slot under the key.
	KeyNotFoundError = "key does not exist"

	// SlotEmptyError is returned when the slot is reserved but holds no object.
	SlotEmptyError = "slot is not filled"

	// InsufficientBalanceError is returned when the bucket escrow does not
	// cover the requested withdrawal.
	InsufficientBalanceError = "insufficient bucket balance"

	// OutsideUnlockWindowError is returned on an attempt to run an
	// escrow-funded renewal before the unlock window opens.
	OutsideUnlockWindowError = "extension window is not open yet"
)
