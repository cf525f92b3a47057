package types

// UserSummary is the public view of a looked-up user.
//
// Optional upstream fields are always present here with zero values
// (0/false/null) so consumers never need to test for absence.
type UserSummary struct {
	ID          string  `json:"id" description:"The user's ID (snowflake)"`
	Username    string  `json:"username" description:"The user's username"`
	Avatar      *string `json:"avatar" description:"CDN URL of the user's avatar, if set"`
	Banner      *string `json:"banner" description:"CDN URL of the user's profile banner, if set"`
	AccentColor *int    `json:"accentColor" description:"Profile accent color as an integer, if set"`
	Flags       int     `json:"flags" description:"The user's public flags bitmask"`
	Bot         bool    `json:"bot" description:"Whether the account is a bot"`
	Verified    bool    `json:"verified" description:"Whether the account is verified"`
}

// UserLookupResult is the stable contract of the user lookup endpoint.
type UserLookupResult struct {
	Error *string      `json:"error" description:"Error message, if the lookup failed"`
	User  *UserSummary `json:"user" description:"The looked-up user, on success"`
}
