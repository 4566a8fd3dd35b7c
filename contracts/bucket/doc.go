/*
Package bucket implements Bucket contract which is deployed to FS chain.

Bucket contract keeps access-controlled registries of stored objects. Each
bucket maps integer keys to objects living in the store contract and carries
its own escrow balance in the balance contract token. Mutation is gated by a
capability created together with the bucket: every state-changing method
checks that the presented capability is bound to the target bucket and that
its owner signed the transaction.

A key goes through a reserve-then-fill protocol: Reserve claims the key,
Add or ReceiveAndAdd places an object into it, Remove deletes it. Filling a
key that was never reserved, double-filling and double-reserving all fail.

Object lifetimes are extended in two ways. RenewWithPayment charges an
external payer directly. Renew spends the bucket escrow, buys exactly the
bucket's extension period and is allowed only within the unlock window before
the object's expiration, so that the escrow cannot be drained by premature
renewals.

# Contract notifications

NewBucket notification. This notification is produced when a bucket is
created, then it looks like:

	NewBucket:
	  - name: bucketID
	    type: Integer
	  - name: capabilityID
	    type: Integer
	  - name: owner
	    type: Hash160

Deposit notification. This notification is produced when assets are escrowed
into a bucket, then it looks like:

	Deposit:
	  - name: bucketID
	    type: Integer
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

Withdraw notification. This notification is produced when escrowed assets are
released, then it looks like:

	Withdraw:
	  - name: bucketID
	    type: Integer
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Reserve notification. This notification is produced when a key is reserved,
then it looks like:

	Reserve:
	  - name: bucketID
	    type: Integer
	  - name: key
	    type: Integer

AddSuccess notification. This notification is produced when a reserved slot
is filled, then it looks like:

	AddSuccess:
	  - name: bucketID
	    type: Integer
	  - name: key
	    type: Integer
	  - name: objectID
	    type: Hash256

RemoveSuccess notification. This notification is produced when a slot is
deleted, then it looks like:

	RemoveSuccess:
	  - name: bucketID
	    type: Integer
	  - name: key
	    type: Integer
	  - name: objectID
	    type: Hash256

Renew notification. This notification is produced when an object lifetime is
extended through the bucket, then it looks like:

	Renew:
	  - name: bucketID
	    type: Integer
	  - name: key
	    type: Integer
	  - name: epochs
	    type: Integer
	  - name: cost
	    type: Integer

# Contract storage scheme

| Key                          | Value      | Description                   |
|------------------------------|------------|-------------------------------|
| `i` + bucket ID              | Serialized | bucket record                 |
| `c` + capability ID          | Serialized | capability record             |
| `s` + bucket ID + slot key   | Serialized | slot record                   |
| `counter`                    | int        | shared identifier sequence    |
| `balanceScriptHash`          | Hash160    | balance contract hash         |
| `storeScriptHash`            | Hash160    | store contract hash           |
| `epochScriptHash`            | Hash160    | epoch contract hash           |
| `handoffScriptHash`          | Hash160    | handoff contract hash         |

Bucket IDs and slot keys inside storage keys are little-endian integers
padded to 8 bytes.
*/
package bucket
