// Package notification decides, once per user per day per kind, whether a
// quota-warning or lifecycle email fires.
//
// Deduplication is an atomic first-writer-wins claim on the suppression
// store: claiming the (user, kind, day) key and marking it notified are
// the same operation, so two concurrent triggers can never both send.
// A user whose preference suppresses email still claims the key, which
// keeps the periodic sweep from re-evaluating them the same day.
//
// The 80% and 100% quota boundaries are independent kinds with separate
// keys, so both can fire on the same day without suppressing each other.
//
// Email dispatch is at-most-one-attempt: a transport failure is logged
// and the claim stands. A flaky email provider can never cause a webhook
// redelivery or a quota rollback.
package notification
