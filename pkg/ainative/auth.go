package ainative

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// Version is the SDK release version, sent with every request in the
// X-SDK-Version header.
const Version = "0.1.0"

const sdkLanguage = "Go"

// authHeaders builds the authentication headers for a request. The API key
// is always sent; the HMAC signature pair is added only when a secret is
// configured, and the organization header only when an org ID is set.
func authHeaders(apiKey, apiSecret, orgID string, now time.Time) map[string]string {
	headers := map[string]string{
		"X-API-Key":      apiKey,
		"X-SDK-Version":  Version,
		"X-SDK-Language": sdkLanguage,
	}

	if apiSecret != "" {
		timestamp := strconv.FormatInt(now.Unix(), 10)
		headers["X-Timestamp"] = timestamp
		headers["X-Signature"] = signRequest(apiSecret, apiKey, timestamp)
	}

	if orgID != "" {
		headers["X-Organization-ID"] = orgID
	}

	return headers
}

// signRequest computes the request signature: the HMAC-SHA256 of the API key
// concatenated with the timestamp, keyed by the API secret, base64-encoded.
// The server recomputes the same digest to verify the caller holds the secret.
func signRequest(apiSecret, apiKey, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(apiKey + timestamp))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
