// Package subscription reconciles billing lifecycle events into durable
// subscription state and the per-user plan entitlement projection.
//
// The reconciler is a state machine over subscription status, keyed by the
// payment provider's immutable subscription ID. It is built to survive the
// realities of webhook delivery: duplicate event IDs are no-ops through
// the idempotency ledger, out-of-order events are discarded by comparing
// embedded period timestamps against stored state, and a canceled
// subscription is never resurrected by a stale update.
//
// All writes for one event — the idempotency claim, the subscription
// record, and the profile plan projection — commit in a single store
// transaction. A transient failure rolls everything back, including the
// claim, so the provider's redelivery of the same event ID is re-admitted.
// Provider-side redelivery is the retry mechanism; there is no internal
// retry loop.
//
// The package also creates checkout and customer portal links through a
// BillingProvider, with a Paddle implementation.
package subscription
