// Package services holds domain logic that needs more than one aggregate.
//
// The package includes:
//   - RedemptionPolicy: decides whether a scanned code may be redeemed by the
//     scanning operator and turns the order's status into a redemption outcome
package services
