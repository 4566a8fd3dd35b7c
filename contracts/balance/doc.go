/*
Package balance implements Balance contract which is deployed to the EscrowFS
sidechain.

Balance contract stores all EscrowFS account balances. It is a NEP-17
compatible contract, so it can be tracked and controlled by N3 compatible
network monitors and wallet software.

This contract is used to store all micro transactions in the EscrowFS chain:
bucket escrow deposits and withdrawals, object storage fees and lifetime
extension fees. It is inefficient to make such small payment transactions in
main chain. To process small transfers, balance contract has higher (12)
decimal precision than native GAS contract.

System contracts of the suite (bucket and store) are registered at deploy
time and may move assets with TransferX on behalf of accounts whose witness
they have verified themselves.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

TransferX notification. This is an enhanced transfer notification with details.

	TransferX:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: details
	    type: ByteArray
*/
package balance

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'CirculationValue' -> int
   total amount of the payment medium circulating in the EscrowFS network
 - a<interop.Hash160> -> std.Serialize(Account)
   balance sheet of all EscrowFS users (here Account is a structure defined in current package)
 - s<interop.Hash160> -> []byte
   registered system contracts allowed to use TransferX

# Accounting
Contract stores information about all EscrowFS accounts.
*/
