// Package assetmanager builds public CDN URLs from asset hashes. Hashes
// prefixed with "a_" are animated and served as gif, everything else as
// png. A nil hash stays nil so callers can pass fields straight through.
package assetmanager

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	SizeIcon       = 128
	SizeAvatar     = 128
	SizeSplash     = 1024
	SizeBanner     = 1024
	SizeUserBanner = 600
)

func assetURL(base, ownerID string, hash *string, size int) *string {
	if hash == nil || *hash == "" {
		return nil
	}

	ext := "png"

	if strings.HasPrefix(*hash, "a_") {
		ext = "gif"
	}

	url := base + ownerID + "/" + *hash + "." + ext + "?size=" + strconv.Itoa(size)

	return &url
}

func GuildIconURL(guildID string, hash *string) *string {
	return assetURL(discordgo.EndpointCDNIcons, guildID, hash, SizeIcon)
}

func GuildSplashURL(guildID string, hash *string) *string {
	return assetURL(discordgo.EndpointCDNSplashes, guildID, hash, SizeSplash)
}

func GuildBannerURL(guildID string, hash *string) *string {
	return assetURL(discordgo.EndpointCDNBanners, guildID, hash, SizeBanner)
}

func UserAvatarURL(userID string, hash *string) *string {
	return assetURL(discordgo.EndpointCDNAvatars, userID, hash, SizeAvatar)
}

func UserBannerURL(userID string, hash *string) *string {
	return assetURL(discordgo.EndpointCDNBanners, userID, hash, SizeUserBanner)
}
