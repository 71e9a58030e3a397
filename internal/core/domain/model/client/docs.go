// Package client provides the Client aggregate: a registered sender or receiver
// together with the loyalty state accumulated from the parcels they sent.
//
// Key business rules:
//   - Identifiers are positive integers assigned sequentially by the repository
//   - Full name and phone are required
//   - The tier is recomputed from the parcel count every time it increases
//   - The monthly discount and the yearly free delivery can only be consumed when
//     the corresponding gate is open; consuming a closed gate is a policy violation
package client
