package deploy

// Config keys interpreted by the store contract when charging for object
// storage and lifetime extension.
const (
	StorageFeeConfig = "StorageFee"
	ExtendFeeConfig  = "ExtendFee"
)

// RawNetworkParameter is an EscrowFS network parameter which is transmitted
// but not interpreted by the contracts themselves.
type RawNetworkParameter struct {
	// Name of the parameter.
	Name string

	// Raw parameter value.
	Value []byte
}

// NetworkConfiguration represents EscrowFS network configuration stored in
// the epoch contract.
type NetworkConfiguration struct {
	StorageFee uint64
	ExtendFee  uint64
	Raw        []RawNetworkParameter
}

// deployArgs converts the configuration into the argument expected by the
// epoch contract _deploy method: a flat array of key-value pairs.
func (x NetworkConfiguration) deployArgs() []any {
	args := make([]any, 0, 2*(2+len(x.Raw)))
	args = append(args,
		[]byte(StorageFeeConfig), int64(x.StorageFee),
		[]byte(ExtendFeeConfig), int64(x.ExtendFee),
	)
	for _, p := range x.Raw {
		args = append(args, []byte(p.Name), p.Value)
	}
	return args
}
