// Package normalizer maps raw upstream payloads onto the service's
// stable response contract: hashes become CDN URLs, snake_case becomes
// the documented field names, and anything a naive renderer could choke
// on (object traits, activity blobs) is reduced or dropped.
package normalizer

import (
	"fmt"

	"vanitycheck/assetmanager"
	"vanitycheck/discord"
	"vanitycheck/types"

	mapset "github.com/deckarep/golang-set/v2"
)

// Vanity maps an invite lookup onto the vanity check contract.
// available=true always carries a nil guild.
func Vanity(l *discord.InviteLookup) types.VanityCheckResult {
	if l.Available {
		return types.VanityCheckResult{Available: true}
	}

	return types.VanityCheckResult{
		Available: false,
		Guild:     GuildSummary(l.Invite),
	}
}

// GuildSummary maps the raw invite payload to the public guild view.
func GuildSummary(inv *discord.RawInvite) *types.GuildSummary {
	g := inv.Guild

	s := &types.GuildSummary{
		ID:                       g.ID,
		Name:                     g.Name,
		Icon:                     assetmanager.GuildIconURL(g.ID, g.Icon),
		Splash:                   assetmanager.GuildSplashURL(g.ID, g.Splash),
		Banner:                   assetmanager.GuildBannerURL(g.ID, g.Banner),
		Description:              g.Description,
		Features:                 dedupeFeatures(g.Features),
		VerificationLevel:        g.VerificationLevel,
		NSFW:                     g.NSFW,
		NSFWLevel:                g.NSFWLevel,
		PremiumSubscriptionCount: g.PremiumSubscriptionCount,
		PremiumTier:              g.PremiumTier,
		ApproximateMemberCount:   inv.ApproximateMemberCount,
		ApproximatePresenceCount: inv.ApproximatePresenceCount,
	}

	if inv.Channel != nil {
		s.Channel = &types.InviteChannel{
			ID:   inv.Channel.ID,
			Name: inv.Channel.Name,
			Type: inv.Channel.Type,
		}
	}

	if inv.Profile != nil {
		s.Traits = sanitizeTraits(inv.Profile.Traits)
	}

	return s
}

// User maps the raw upstream user to the public view. Optional upstream
// fields become explicit zero values so consumers never see absence.
func User(raw *discord.RawUser) *types.UserSummary {
	return &types.UserSummary{
		ID:          raw.ID,
		Username:    raw.Username,
		Avatar:      assetmanager.UserAvatarURL(raw.ID, raw.Avatar),
		Banner:      assetmanager.UserBannerURL(raw.ID, raw.Banner),
		AccentColor: raw.AccentColor,
		Flags:       raw.Flags,
		Bot:         raw.Bot,
		Verified:    raw.Verified,
	}
}

// dedupeFeatures drops repeated feature tags, keeping first-seen order.
func dedupeFeatures(features []string) []string {
	if features == nil {
		return []string{}
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, len(features))

	for _, f := range features {
		if seen.Add(f) {
			out = append(out, f)
		}
	}

	return out
}

// sanitizeTraits reduces guild profile traits to plain display strings.
// Object traits prefer their label, then name; anything else is
// stringified so the payload stays safe for naive rendering.
func sanitizeTraits(traits []any) []string {
	out := make([]string, 0, len(traits))

	for _, t := range traits {
		switch v := t.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			if label, ok := v["label"].(string); ok && label != "" {
				out = append(out, label)
				continue
			}

			if name, ok := v["name"].(string); ok && name != "" {
				out = append(out, name)
				continue
			}

			out = append(out, fmt.Sprintf("%v", v))
		default:
			out = append(out, fmt.Sprintf("%v", v))
		}
	}

	return out
}
