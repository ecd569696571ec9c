package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the HTTP header carrying the webhook signature.
const SignatureHeader = "Billing-Signature"

// Sign computes the signature header value for a payload at a given time.
// Format: "t=<unix>,v1=<hex hmac-sha256>" where the MAC covers
// "<unix>.<payload>". Binding the timestamp into the MAC prevents replay
// of captured signatures against new windows.
func Sign(secret string, payload []byte, at time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeMAC(secret, payload, ts)), nil
}

// Verify authenticates a raw webhook body against its signature header
// using constant-time comparison. A maxAge of zero disables the replay
// window check. Callers must not process the body after a failure.
func Verify(payload []byte, header, secret string, maxAge time.Duration) error {
	if secret == "" {
		return ErrMissingSecret
	}
	if header == "" {
		return ErrMissingSignature
	}

	ts, mac, err := splitHeader(header)
	if err != nil {
		return err
	}

	if maxAge > 0 {
		age := time.Since(time.Unix(ts, 0))
		if age > maxAge {
			return fmt.Errorf("%w: signed %v ago", ErrSignatureExpired, age.Truncate(time.Second))
		}
		// Small allowance for clock skew, but far-future timestamps are forgeries.
		if age < -time.Minute {
			return fmt.Errorf("%w: signed in the future", ErrSignatureExpired)
		}
	}

	expected := computeMAC(secret, payload, ts)
	if !hmac.Equal([]byte(expected), []byte(mac)) {
		return ErrSignatureMismatch
	}

	return nil
}

// VerifyAndParse authenticates and decodes a webhook body in one step.
// This is the only entry point handlers should use: it guarantees parsing
// never happens on an unverified body.
func VerifyAndParse(payload []byte, header, secret string, maxAge time.Duration) (*Event, error) {
	if err := Verify(payload, header, secret, maxAge); err != nil {
		return nil, err
	}
	return ParseEvent(payload)
}

func splitHeader(header string) (ts int64, mac string, err error) {
	for part := range strings.SplitSeq(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err = strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("%w: invalid timestamp", ErrSignatureMismatch)
			}
		case "v1":
			mac = value
		}
	}
	if mac == "" {
		return 0, "", ErrMissingSignature
	}
	if ts == 0 {
		return 0, "", fmt.Errorf("%w: missing timestamp", ErrSignatureMismatch)
	}
	return ts, mac, nil
}

func computeMAC(secret string, payload []byte, ts int64) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.", ts)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
