package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ComputeSignature returns the hex HMAC-SHA256 of payload under secret.
func ComputeSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a webhook signature against the raw, unparsed
// request body. Comparison is constant-time via hmac.Equal.
//
// Fail-closed: an empty secret or empty signature never verifies. There is no
// "skip when unconfigured" path; every webhook call site goes through here.
func VerifySignature(payload []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	// Tolerate the "sha256=<hex>" header convention some providers use.
	signature = strings.TrimPrefix(signature, "sha256=")

	expected := ComputeSignature(payload, secret)
	return hmac.Equal([]byte(signature), []byte(expected))
}
