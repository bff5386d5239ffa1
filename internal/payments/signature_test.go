package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign_MatchesHMACOfOrderPipePayment(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_1|pay_1"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, Sign("secret", "order_1", "pay_1"))
	assert.True(t, VerifySignature("secret", "order_1", "pay_1", want))
}

func flipBit(s string, i int) string {
	b := []byte(s)
	b[i%len(b)] ^= 0x01
	return string(b)
}

func TestVerifySignature_AnySingleBitFlipFails(t *testing.T) {
	const secret, orderID, paymentID = "secret", "order_Jx81", "pay_Kd02"
	sig := Sign(secret, orderID, paymentID)

	for i := 0; i < len(orderID); i++ {
		assert.False(t, VerifySignature(secret, flipBit(orderID, i), paymentID, sig), "order id bit %d", i)
	}
	for i := 0; i < len(paymentID); i++ {
		assert.False(t, VerifySignature(secret, orderID, flipBit(paymentID, i), sig), "payment id bit %d", i)
	}
	for i := 0; i < len(sig); i++ {
		assert.False(t, VerifySignature(secret, orderID, paymentID, flipBit(sig, i)), "signature bit %d", i)
	}
}

func TestVerifySignature_Rejects(t *testing.T) {
	sig := Sign("secret", "o", "p")
	tests := []struct {
		name                    string
		secret, order, pay, sig string
	}{
		{"wrong secret", "other", "o", "p", sig},
		{"empty secret", "", "o", "p", Sign("", "o", "p")},
		{"empty signature", "secret", "o", "p", ""},
		{"swapped ids", "secret", "p", "o", sig},
		{"uppercase hex", "secret", "o", "p", upper(sig)},
		{"truncated", "secret", "o", "p", sig[:len(sig)-2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifySignature(tt.secret, tt.order, tt.pay, tt.sig))
		})
	}
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 32
		}
	}
	return string(b)
}
