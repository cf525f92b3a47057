// Package validators holds the pure input checks run before any network
// call. All functions are synchronous and side-effect free.
package validators

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

var (
	vanityCharset = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	snowflakeRe   = regexp.MustCompile(`^\d{17,20}$`)

	// Discord epoch, 2015-01-01. Snowflakes decoding to before this
	// (or to the future) cannot be real IDs.
	discordEpoch = time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// VanityCode checks a candidate vanity invite code against Discord's
// syntactic rules. Returns nil when the code is well-formed.
func VanityCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New("Vanity URL is required")
	}

	if len(code) < 2 {
		return errors.New("Vanity URL must be at least 2 characters")
	}

	if len(code) > 32 {
		return errors.New("Vanity URL cannot exceed 32 characters")
	}

	if !vanityCharset.MatchString(code) {
		return errors.New("Vanity URL can only contain letters, numbers, hyphens, and underscores")
	}

	if strings.HasPrefix(code, "-") || strings.HasPrefix(code, "_") || strings.HasSuffix(code, "-") || strings.HasSuffix(code, "_") {
		return errors.New("Vanity URL cannot start or end with hyphen or underscore")
	}

	return nil
}

// UserID checks a candidate user ID. Valid IDs are 17-20 digit snowflakes
// whose embedded timestamp falls between the Discord epoch and now.
func UserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("User ID is required")
	}

	if !snowflakeRe.MatchString(id) {
		return errors.New("Discord ID must be 17-20 digits")
	}

	ts, err := discordgo.SnowflakeTimestamp(id)

	if err != nil || ts.Before(discordEpoch) || ts.After(time.Now()) {
		return errors.New("Invalid Discord ID format")
	}

	return nil
}
