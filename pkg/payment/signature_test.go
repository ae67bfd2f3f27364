package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifySignatureRoundTrip(t *testing.T) {
	payload := []byte(`{"paymentId":"pay_123","status":"PAID"}`)
	secret := "whsec_fixed_test_secret"

	sig := ComputeSignature(payload, secret)
	require.True(t, VerifySignature(payload, sig, secret))
	require.True(t, VerifySignature(payload, "sha256="+sig, secret))
}

func TestVerifySignatureRejectsMutations(t *testing.T) {
	payload := []byte(`{"paymentId":"pay_123","status":"PAID"}`)
	secret := "whsec_fixed_test_secret"
	sig := ComputeSignature(payload, secret)

	// Single-bit mutation of the payload.
	mutated := append([]byte(nil), payload...)
	mutated[0] ^= 0x01
	require.False(t, VerifySignature(mutated, sig, secret))

	// Single-character mutation of the signature.
	badSig := []byte(sig)
	if badSig[0] == 'a' {
		badSig[0] = 'b'
	} else {
		badSig[0] = 'a'
	}
	require.False(t, VerifySignature(payload, string(badSig), secret))

	// Wrong secret.
	require.False(t, VerifySignature(payload, sig, "other_secret"))
}

func TestVerifySignatureFailsClosed(t *testing.T) {
	payload := []byte(`{}`)
	require.False(t, VerifySignature(payload, ComputeSignature(payload, ""), ""), "empty secret must never verify")
	require.False(t, VerifySignature(payload, "", "whsec_x"), "empty signature must never verify")
}

func TestCreatePaymentLinkMock(t *testing.T) {
	g := NewMockGateway()
	inv, err := g.CreatePaymentLink(context.Background(), LinkRequest{OrderID: "ord-1", Amount: 5000})
	require.NoError(t, err)
	require.NotEmpty(t, inv.InvoiceURL)
}
