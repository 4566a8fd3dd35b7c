package bucket

import (
	"github.com/escrowfs/escrowfs-contract/contracts/bucket/bucketconst"
)

const (
	// UnauthorizedError is returned on a failed capability check.
	UnauthorizedError = bucketconst.UnauthorizedError

	// NotFoundError is returned if the bucket is missing.
	NotFoundError = bucketconst.NotFoundError

	// DuplicateKeyError is returned on a second reservation of the same key.
	DuplicateKeyError = bucketconst.DuplicateKeyError

	// KeyNotReservedError is returned on filling an unreserved key.
	KeyNotReservedError = bucketconst.KeyNotReservedError

	// AlreadyFilledError is returned on filling an occupied slot.
	AlreadyFilledError = bucketconst.AlreadyFilledError

	// KeyNotFoundError is returned if there is no slot under the key.
	KeyNotFoundError = bucketconst.KeyNotFoundError

	// SlotEmptyError is returned on reading a reserved but empty slot.
	SlotEmptyError = bucketconst.SlotEmptyError

	// InsufficientBalanceError is returned on overdrawing the bucket escrow.
	InsufficientBalanceError = bucketconst.InsufficientBalanceError

	// OutsideUnlockWindowError is returned on a premature escrow-funded renewal.
	OutsideUnlockWindowError = bucketconst.OutsideUnlockWindowError
)
