// Package parcel provides the Parcel aggregate and its lifecycle state machine.
//
// The package includes:
//   - Parcel: the aggregate root owning the status history and notification log
//   - Status: the delivery state machine
//   - TrackingCode: the externally visible parcel identifier
//   - Type, Content, Channel, Courier, DelayReason: closed enumerations with
//     string forms used for persistence
//   - Filter: the conjunctive parcel search
//
// Key business rules:
//   - Weight must be positive and not exceed the channel ceiling
//     (Office 100kg, Parcelbox 30kg, Address 50kg, Taxi 20kg)
//   - Declared and insured values are never negative
//   - Dangerous goods cannot be shipped internationally
//   - Accepting a parcel declared above 5000 requires an operator
//   - Delivered and Lost are terminal: no further status changes are accepted
//   - History and notifications are append-only
package parcel
