/*
Package epoch contains implementation of the Epoch contract for EscrowFS
systems.

Epoch contract is the time source of the EscrowFS sidechain. It stores the
current epoch number, advanced by Alphabet nodes, and the network
configuration parameters shared by the other contracts (storage and
extension fees among them). Contracts that need to react to the passage of
time register themselves with SubscribeForNewEpoch and get their newEpoch
method invoked on every tick.

# Contract notifications

NewEpoch notification. This notification is produced when a new epoch is
applied in the network by invoking NewEpoch method.

	NewEpoch
	  - name: epoch
	    type: Integer

NewEpochSubscription notification. This notification is produced when a new
contract subscribes for new epoch notifications.

	NewEpochSubscription
	  - name: contract
	    type: Hash160
*/
package epoch

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'currentEpoch' -> int
   current epoch
 - 'currentEpochBlock' -> int
   block which "ticked" the current epoch
 - 'config<name>' -> []byte
   value of the particular EscrowFS network parameter
 - 'e<index><script_hash>' -> []byte
   contracts registered for the new epoch notification

# Epoch
Contract stores the current (last) EscrowFS timestamp for the network within
which the contract is deployed.

# Network configuration
Contract stores EscrowFS network configuration shared by the whole contract
suite.
*/
