package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogacrm_backend/internals/configs"
)

func TestIssueAndValidateToken(t *testing.T) {
	configs.LoginSecret = "unit-test-secret"
	now := time.Unix(1_700_000_000, 0)

	t.Run("Round trip", func(t *testing.T) {
		token := IssueToken(42, now)
		sess, err := ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), sess.UserID)
		assert.Equal(t, now.Unix(), sess.IssuedAt)
		assert.False(t, sess.Expired(now.Add(3*time.Hour)))
		assert.True(t, sess.Expired(now.Add(3*time.Hour+time.Second)))
	})

	t.Run("Tampered payload is rejected", func(t *testing.T) {
		token := IssueToken(42, now)
		raw, err := base64.StdEncoding.DecodeString(token)
		require.NoError(t, err)
		// claim a different user id with the old signature
		forged := strings.Replace(string(raw), "userId=42", "userId=43", 1)
		_, err = ValidateToken(base64.StdEncoding.EncodeToString([]byte(forged)))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Timestamp is unsigned by design", func(t *testing.T) {
		token := IssueToken(42, now)
		raw, _ := base64.StdEncoding.DecodeString(token)
		forged := strings.Replace(string(raw), "timestamp=1700000000", "timestamp=1700009999", 1)
		sess, err := ValidateToken(base64.StdEncoding.EncodeToString([]byte(forged)))
		require.NoError(t, err)
		assert.Equal(t, int64(1_700_009_999), sess.IssuedAt)
	})

	t.Run("Garbage input", func(t *testing.T) {
		_, err := ValidateToken("not base64 at all ???")
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = ValidateToken(base64.StdEncoding.EncodeToString([]byte("userId=x&nope")))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong secret invalidates", func(t *testing.T) {
		token := IssueToken(7, now)
		configs.LoginSecret = "rotated-secret"
		defer func() { configs.LoginSecret = "unit-test-secret" }()
		_, err := ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
