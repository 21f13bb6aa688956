// Package notify delivers lint report events to configured webhook
// endpoints. Payloads are JSON and carry an HMAC-SHA256 signature so
// receivers can verify authenticity. Delivery failures are retried with
// exponential backoff and logged; they never fail the lint operation
// that triggered them.
package notify
