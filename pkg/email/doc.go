// Package email defines the outbound email transport boundary.
//
// The engine only depends on the Sender interface; the Postmark client is
// the production implementation and DevSender logs instead of sending for
// local development. Delivery is at-most-one-attempt from the caller's
// perspective: a failed send is returned to the caller to log, never
// retried here.
package email
