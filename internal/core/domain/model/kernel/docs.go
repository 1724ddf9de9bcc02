// Package kernel holds the value objects shared by every aggregate of the
// bookdesk domain. Today that is UUID, used for entity identifiers and for
// one-time redemption codes.
package kernel
