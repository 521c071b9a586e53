package auth

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"yogacrm_backend/internals/configs"
)

// Session tokens are a reversible base64 envelope:
//
//	userId=<id>&timestamp=<unix>&signature=<hmac>&algorithm=sha256
//
// The signature covers the user id only; the timestamp rides along
// unsigned and is checked separately by the caller for expiry. The
// algorithm field is a legacy label — the signature is HMAC-SHA512.

var ErrInvalidToken = errors.New("invalid session token")

var tokenPattern = regexp.MustCompile(`^userId=(\d+)&timestamp=(\d+)&signature=(.+)&algorithm=sha256$`)

type Session struct {
	UserID   int64
	IssuedAt int64
}

func (s Session) Expired(now time.Time) bool {
	return now.Unix()-s.IssuedAt > configs.SessionTTLSeconds
}

func calcSignature(message string) string {
	mac := hmac.New(sha512.New, []byte(configs.LoginSecret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func checkSignature(signature, message string) bool {
	want := calcSignature(message)
	return hmac.Equal([]byte(signature), []byte(want))
}

// IssueToken builds a fresh sessionid for the user.
func IssueToken(userID int64, now time.Time) string {
	id := strconv.FormatInt(userID, 10)
	raw := fmt.Sprintf("userId=%s&timestamp=%d&signature=%s&algorithm=sha256",
		id, now.Unix(), calcSignature(id))
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ValidateToken reverses the envelope and verifies the signature.
// Expiry is NOT checked here; see Session.Expired.
func ValidateToken(token string) (Session, error) {
	rawBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	m := tokenPattern.FindStringSubmatch(string(rawBytes))
	if m == nil {
		return Session{}, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	issuedAt, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Session{}, ErrInvalidToken
	}
	if !checkSignature(m[3], m[1]) {
		return Session{}, ErrInvalidToken
	}
	return Session{UserID: userID, IssuedAt: issuedAt}, nil
}
