package store

import (
	"github.com/escrowfs/escrowfs-contract/contracts/store/storeconst"
)

const (
	// StorageFeeKey is a key in epoch contract config which contains the per
	// epoch storage fee.
	StorageFeeKey = storeconst.StorageFeeKey
	// ExtendFeeKey is a key in epoch contract config which contains the per
	// epoch lifetime extension fee.
	ExtendFeeKey = storeconst.ExtendFeeKey

	// NotFoundError is returned if the object is missing.
	NotFoundError = storeconst.NotFoundError

	// InsufficientPaymentError is returned when the offered payment limit does
	// not cover the extension cost.
	InsufficientPaymentError = storeconst.InsufficientPaymentError
)
