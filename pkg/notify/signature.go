package notify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Signature header names carried on signed inbound webhooks.
const (
	HeaderSignature = "X-ADSMedia-Signature"
	HeaderTimestamp = "X-ADSMedia-Timestamp"
)

// DefaultSignatureMaxAge bounds how old a signed payload may be before it is
// rejected as a replay.
const DefaultSignatureMaxAge = 5 * time.Minute

// SignPayload computes the signature headers for a payload. The signature is
// HMAC-SHA256 over "timestamp.payload" so a captured request cannot be
// replayed outside the acceptance window.
func SignPayload(secret string, payload []byte, at time.Time) (signature, timestamp string) {
	ts := strconv.FormatInt(at.Unix(), 10)
	return computeSignature(secret, payload, ts), ts
}

// VerifySignature validates an inbound payload against its signature headers
// using constant-time comparison. maxAge <= 0 disables the replay window.
func VerifySignature(secret string, payload []byte, signature, timestamp string, maxAge time.Duration) error {
	if signature == "" || timestamp == "" {
		return fmt.Errorf("%w: missing signature headers", ErrInvalidSignature)
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid timestamp format", ErrInvalidSignature)
	}

	if maxAge > 0 {
		age := time.Since(time.Unix(ts, 0))
		if age > maxAge {
			return fmt.Errorf("%w: payload too old (%s)", ErrInvalidSignature, age)
		}
		// Tolerate modest clock skew but reject far-future timestamps.
		if age < -time.Minute {
			return fmt.Errorf("%w: timestamp is in the future", ErrInvalidSignature)
		}
	}

	expected := computeSignature(secret, payload, timestamp)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("%w: signature mismatch", ErrInvalidSignature)
	}
	return nil
}

func computeSignature(secret string, payload []byte, timestamp string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(timestamp))
	h.Write([]byte("."))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
