package notify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign generates the HMAC-SHA256 signature for a payload
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies a webhook payload signature. Receivers should
// call this with the X-Contentlint-Signature header value.
func VerifySignature(payload []byte, signature, secret string) bool {
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
