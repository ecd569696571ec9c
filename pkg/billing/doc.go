// Package billing defines the inbound billing event model and the
// signature verification that guards it.
//
// The payment processor delivers lifecycle events over a webhook with an
// HMAC-SHA256 signature computed over the raw request body. Verification
// is the single trust boundary: nothing downstream sees an event that did
// not pass Verify, and a body that fails verification must not be parsed
// or processed further.
//
// Events are modeled as a tagged union: Event carries a Type plus the
// subscription payload populated for subscription lifecycle events. The
// reconciler switches over Type exhaustively; unknown types survive
// parsing so the caller can acknowledge and drop them.
//
//	event, err := billing.VerifyAndParse(body, sigHeader, secret, 5*time.Minute)
//	if err != nil {
//		// respond 400, do not touch the body again
//	}
package billing
