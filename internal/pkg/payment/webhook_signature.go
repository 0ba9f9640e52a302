package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// VerifyPaystackWebhookSignature checks the x-paystack-signature header:
// hex-encoded HMAC-SHA512 of the raw body keyed with the secret key.
func VerifyPaystackWebhookSignature(payload []byte, signatureHeader, secretKey string) bool {
	sig := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(secretKey)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}
