package common

import "github.com/nspcc-dev/neo-go/pkg/interop/runtime"

var (
	// ErrAlphabetWitnessFailed appears when the method must be
	// called by the Alphabet but was not.
	ErrAlphabetWitnessFailed = "alphabet witness check failed"
	// ErrOwnerWitnessFailed appears when the method must be called
	// by an owner of some assets but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
)

// CheckAlphabetWitness checks witness of the Alphabet multi-signature
// account. It panics with ErrAlphabetWitnessFailed message on fail.
func CheckAlphabetWitness() {
	checkWitnessWithPanic(AlphabetAddress(), ErrAlphabetWitnessFailed)
}

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrOwnerWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}

// HasUpdateAccess tells whether the committee signed the current
// transaction, which is required to migrate any of the contracts.
func HasUpdateAccess() bool {
	return runtime.CheckWitness(CommitteeAddress())
}
