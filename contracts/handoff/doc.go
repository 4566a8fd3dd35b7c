/*
Package handoff implements Handoff contract which is deployed to FS chain.

Handoff contract implements deferred object transfers between parties. A
sender parks a stored object for a specific bucket and receives an opaque
token. Whoever holds a capability for that bucket later redeems the token
through the bucket contract, which places the object into one of its reserved
slots. Tokens are single-use and bound to the bucket they were parked for.

# Contract notifications

Parked notification. This notification is produced when an object is parked
for a bucket, then it looks like:

	Parked:
	  - name: token
	    type: Hash256
	  - name: objectID
	    type: Hash256
	  - name: bucketID
	    type: Integer

Resolved notification. This notification is produced when a token is redeemed,
then it looks like:

	Resolved:
	  - name: token
	    type: ByteArray
	  - name: objectID
	    type: Hash256
	  - name: bucketID
	    type: Integer

# Contract storage scheme

| Key                | Value      | Description                  |
|--------------------|------------|------------------------------|
| `t` + token        | Serialized | parked parcel                |
| `counter`          | int        | sequence for token derivation|
| `storeScriptHash`  | Hash160    | store contract hash          |
| `bucketScriptHash` | Hash160    | bucket contract hash         |
*/
package handoff
