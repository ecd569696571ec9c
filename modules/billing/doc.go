// Package billing exposes the HTTP surface for subscription and quota
// management: the provider webhook, hosted checkout/portal link creation,
// metered quota consumption, and the internal sweep trigger.
//
// The webhook handler is the only unauthenticated write path; it trusts
// nothing but the HMAC signature over the raw body. Response codes are
// the contract with the provider's redelivery loop: 2xx stops redelivery,
// 4xx marks the event unprocessable, 5xx asks for the same event again.
package billing
