/*
Package store implements Store contract which is deployed to FS chain.

Store contract keeps opaque content objects. An object is addressed by the
SHA-256 hash of its payload and lives for a bounded number of epochs paid for
at upload time. Expired objects are garbage collected a few epochs after
expiration by the NewEpoch tick of the epoch contract. The lifetime of a
stored object can be extended for a fee at any point before it is collected.

# Contract notifications

PutSuccess notification. This notification is produced when an object is
successfully saved, then it looks like:

	PutSuccess:
	  - name: objectID
	    type: Hash256
	  - name: owner
	    type: Hash160

ExtendSuccess notification. This notification is produced when an object
lifetime is successfully extended, then it looks like:

	ExtendSuccess:
	  - name: objectID
	    type: Hash256
	  - name: epochs
	    type: Integer

ObjectRemoved notification. This notification is produced when an expired
object is removed by the epoch tick, then it looks like:

	ObjectRemoved:
	  - name: objectID
	    type: Hash256

# Contract storage scheme

| Key                 | Value      | Description                       |
|---------------------|------------|-----------------------------------|
| `o` + object ID     | Serialized | object payload and bookkeeping    |
| `balanceScriptHash` | Hash160    | balance contract hash             |
| `epochScriptHash`   | Hash160    | epoch contract hash               |
*/
package store
