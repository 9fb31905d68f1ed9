package util

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var youTubeIDRegex = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?(?:.*&)?v=|embed/|v/))([a-zA-Z0-9_-]{11})`)

// directVideoExts are file extensions a <video> element can play directly.
var directVideoExts = map[string]bool{".mp4": true, ".webm": true, ".ogg": true, ".ogv": true, ".mov": true}

// YouTubeVideoID extracts the 11-character video ID from watch, youtu.be,
// embed and /v/ links.
func YouTubeVideoID(videoURL string) (string, bool) {
	m := youTubeIDRegex.FindStringSubmatch(videoURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// YouTubeEmbedURL returns the iframe URL for a YouTube link, or "" when the
// link carries no video ID.
func YouTubeEmbedURL(videoURL string) string {
	id, ok := YouTubeVideoID(videoURL)
	if !ok {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

// IsDirectVideo reports whether videoURL points at a media file by extension.
func IsDirectVideo(videoURL string) bool {
	u, err := url.Parse(videoURL)
	if err != nil {
		return false
	}
	return directVideoExts[strings.ToLower(path.Ext(u.Path))]
}
