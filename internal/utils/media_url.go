package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var youtubeID = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// EmbedVideoURL turns a YouTube watch or share link into its embed URL.
// Links without an 11 character video id are returned unchanged.
func EmbedVideoURL(url string) string {
	match := youtubeID.FindStringSubmatch(url)
	if match == nil || len(match[2]) != 11 {
		return url
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s", match[2])
}

// MediaURL resolves a media path returned by the backend against the root of
// apiBaseURL, the part before "/api". Absolute URLs and empty paths pass through.
func MediaURL(apiBaseURL, path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	root, _, _ := strings.Cut(apiBaseURL, "/api")
	root = strings.TrimRight(root, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return root + path
}
