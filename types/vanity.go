package types

// InviteChannel is the channel a taken vanity invite points at.
type InviteChannel struct {
	ID   string `json:"id" description:"The channel's ID"`
	Name string `json:"name" description:"The channel's name"`
	Type int    `json:"type" description:"The channel's type (Discord channel type enum)"`
}

// GuildSummary is the public view of the guild occupying a vanity code.
// Asset fields are fully-qualified CDN URLs (or null), never raw hashes.
type GuildSummary struct {
	ID                       string         `json:"id" description:"The guild's ID"`
	Name                     string         `json:"name" description:"The guild's name"`
	Icon                     *string        `json:"icon" description:"CDN URL of the guild icon, if set"`
	Splash                   *string        `json:"splash" description:"CDN URL of the invite splash, if set"`
	Banner                   *string        `json:"banner" description:"CDN URL of the guild banner, if set"`
	Description              *string        `json:"description" description:"The guild's description, if set"`
	Features                 []string       `json:"features" description:"Guild feature tags, deduplicated"`
	Traits                   []string       `json:"traits,omitempty" description:"Guild profile traits reduced to display strings"`
	VerificationLevel        int            `json:"verification_level" description:"Verification level (0-4)"`
	NSFW                     bool           `json:"nsfw" description:"Whether the guild is marked NSFW"`
	NSFWLevel                int            `json:"nsfw_level" description:"The guild's NSFW level"`
	PremiumSubscriptionCount int            `json:"premium_subscription_count" description:"Number of boosts"`
	PremiumTier              int            `json:"premium_tier" description:"Boost tier"`
	ApproximateMemberCount   int            `json:"approximate_member_count" description:"Approximate total member count"`
	ApproximatePresenceCount int            `json:"approximate_presence_count" description:"Approximate online member count"`
	Channel                  *InviteChannel `json:"channel,omitempty" description:"The channel the invite points at, if known"`
}

// VanityCheckResult is the stable contract of the vanity check endpoint.
//
// available=true implies guild is null. error != null implies available=false.
type VanityCheckResult struct {
	Available  bool          `json:"available" description:"Whether the vanity code is free to claim"`
	Error      *string       `json:"error" description:"Error message, if the check failed"`
	Guild      *GuildSummary `json:"guild" description:"The guild holding the code, when taken"`
	RetryAfter *int          `json:"retryAfter,omitempty" description:"Seconds to wait before retrying, on rate limits"`
}
