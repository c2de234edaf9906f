package space

import (
	"fmt"
	"strings"
)

const (
	// LandingURL is the site front page the session warms up on
	LandingURL = "https://www.bilibili.com"

	// SpaceBaseURL is the base URL for creator spaces
	SpaceBaseURL = "https://space.bilibili.com"

	// NicknameSelector addresses the creator display name in the
	// space page header
	NicknameSelector = "#app > div.header.space-header > div.upinfo.header-upinfo > div.upinfo__main > div.upinfo-detail > div.upinfo-detail__top > div.nickname"
)

// cardPathFormat addresses the rank-th video card in the upload list.
// It ends at the bili-video-card class stem; the per-field selectors
// complete the BEM suffix (__cover, __details) before descending.
const cardPathFormat = "#app > main > div.space-upload > div.upload-content > div > div.video-body > div > div:nth-child(%d) > div > div > div > div > div.bili-video-card"

// UploadListURL constructs the upload listing URL for a creator
func UploadListURL(authorID string) string {
	return fmt.Sprintf("%s/%s/upload/video", SpaceBaseURL, authorID)
}

// CardSelector returns the selector stem for the rank-th video card.
// Ranks are 1-based.
func CardSelector(rank int) string {
	return fmt.Sprintf(cardPathFormat, rank)
}

// CoverLinkSelector returns the selector for the cover anchor of the
// rank-th card; its href carries the video URL
func CoverLinkSelector(rank int) string {
	return CardSelector(rank) + "__cover > a"
}

// TitleSelector returns the selector for the title anchor of the
// rank-th card
func TitleSelector(rank int) string {
	return CardSelector(rank) + "__details > div.bili-video-card__title > a"
}

// PublishDateSelector returns the selector for the publish date span of
// the rank-th card
func PublishDateSelector(rank int) string {
	return CardSelector(rank) + "__details > div.bili-video-card__subtitle > span"
}

// CanonicalVideoURL strips the query string from a video href. Cover
// links carry per-session tracking parameters that would make the same
// video look different across runs.
func CanonicalVideoURL(href string) string {
	if i := strings.IndexByte(href, '?'); i >= 0 {
		return href[:i]
	}
	return href
}

// IsValidAuthorID checks that an author ID is a bilibili numeric UID
func IsValidAuthorID(id string) bool {
	if id == "" {
		return false
	}

	for _, char := range id {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}

// SanitizeAuthorID normalizes an author ID taken from operator input.
// A pasted space URL is reduced to its numeric ID.
func SanitizeAuthorID(id string) string {
	id = strings.TrimSpace(id)

	for _, prefix := range []string{
		"https://space.bilibili.com/",
		"http://space.bilibili.com/",
		"space.bilibili.com/",
	} {
		if strings.HasPrefix(id, prefix) {
			id = strings.TrimPrefix(id, prefix)
			break
		}
	}

	// Drop any trailing path, query or fragment
	if i := strings.IndexAny(id, "/?#"); i >= 0 {
		id = id[:i]
	}

	return id
}
