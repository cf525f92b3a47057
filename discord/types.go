package discord

// Raw upstream payload shapes. These stay snake_case and untouched; the
// normalizer package maps them onto the service's stable contract.

type RawGuild struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Icon                     *string  `json:"icon"`
	Splash                   *string  `json:"splash"`
	Banner                   *string  `json:"banner"`
	Description              *string  `json:"description"`
	Features                 []string `json:"features"`
	VerificationLevel        int      `json:"verification_level"`
	VanityURLCode            *string  `json:"vanity_url_code"`
	NSFW                     bool     `json:"nsfw"`
	NSFWLevel                int      `json:"nsfw_level"`
	PremiumSubscriptionCount int      `json:"premium_subscription_count"`
	PremiumTier              int      `json:"premium_tier"`
}

type RawChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// RawProfile is the guild profile blob attached to newer invite
// responses. Traits can be plain strings or arbitrary objects; the
// normalizer reduces them to display strings. The live game-activity and
// emoji blobs are intentionally never decoded.
type RawProfile struct {
	Traits []any `json:"traits"`
}

type RawInvite struct {
	Code                     string      `json:"code"`
	Guild                    *RawGuild   `json:"guild"`
	Channel                  *RawChannel `json:"channel"`
	Profile                  *RawProfile `json:"profile"`
	ApproximateMemberCount   int         `json:"approximate_member_count"`
	ApproximatePresenceCount int         `json:"approximate_presence_count"`
}

type RawUser struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Avatar      *string `json:"avatar"`
	Banner      *string `json:"banner"`
	AccentColor *int    `json:"accent_color"`
	Flags       int     `json:"public_flags"`
	Bot         bool    `json:"bot"`
	Verified    bool    `json:"verified"`
}

// InviteLookup is the tagged result of a vanity invite check, decoded at
// the system boundary so no downstream code inspects untyped shapes.
// Either Available is true and Invite is nil, or the code is taken and
// Invite carries the raw payload.
type InviteLookup struct {
	Available bool
	Invite    *RawInvite
}

// apiError is the upstream JSON error body ({"message": ..., "code": ...}).
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
