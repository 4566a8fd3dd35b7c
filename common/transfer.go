package common

var (
	mintPrefix       = []byte{0x01}
	burnPrefix       = []byte{0x02}
	depositPrefix    = []byte{0x10}
	withdrawPrefix   = []byte{0x11}
	storageFeePrefix = []byte{0x20}
	extendFeePrefix  = []byte{0x21}
)

// MintTransferDetails returns the details attached to a balance transfer
// performed by the mint operation.
func MintTransferDetails(txDetails []byte) []byte {
	return append(mintPrefix, txDetails...)
}

// BurnTransferDetails returns the details attached to a balance transfer
// performed by the burn operation.
func BurnTransferDetails(txDetails []byte) []byte {
	return append(burnPrefix, txDetails...)
}

// DepositTransferDetails returns the details attached to a transfer escrowing
// assets into the bucket identified by id.
func DepositTransferDetails(id []byte) []byte {
	return append(depositPrefix, id...)
}

// WithdrawTransferDetails returns the details attached to a transfer releasing
// escrowed assets from the bucket identified by id.
func WithdrawTransferDetails(id []byte) []byte {
	return append(withdrawPrefix, id...)
}

// StorageFeeTransferDetails returns the details attached to the initial
// storage fee payment for the object identified by id.
func StorageFeeTransferDetails(id []byte) []byte {
	return append(storageFeePrefix, id...)
}

// ExtendFeeTransferDetails returns the details attached to the lifetime
// extension fee payment for the object identified by id.
func ExtendFeeTransferDetails(id []byte) []byte {
	return append(extendFeePrefix, id...)
}
