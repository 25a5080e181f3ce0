package auth

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const jobIDClaim = "job_id"

// Segments are decoded with the jwt parser but signatures are never checked:
// session tokens are minted by the vendor and only used for correlation.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// JobIDFromToken returns the job_id claim of a JWT-shaped token, or the raw
// token when it is not three segments, the payload does not decode, or the
// claim is missing.
func JobIDFromToken(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return token
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return token
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return token
	}

	switch id := claims[jobIDClaim].(type) {
	case string:
		if id != "" {
			return id
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}

	return token
}
