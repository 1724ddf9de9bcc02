// Package order models a student's purchase of one product and its lifecycle
// from payment evidence through operator confirmation to pickup.
//
// The package includes:
//   - Order: the aggregate root, one per (student, product) pair
//   - Status: the closed set of lifecycle states and the transitions between them
//   - StatusChanged: the event emitted whenever a stored status changes or a row is removed
//
// Key business rules:
//   - Only PENDING_CONFIRMATION, PAID, DECLINED and DELIVERED are ever stored;
//     UNPAID means the row does not exist
//   - A redemption code is assigned the first time an order reaches PAID or
//     DELIVERED and never changes afterwards
//   - DELIVERED is reached from PAID by redeeming the code, or by an operator override
package order
