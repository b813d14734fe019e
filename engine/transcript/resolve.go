package transcript

import "regexp"

var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|embed/)([A-Za-z0-9_-]{11})`)

// ResolveVideoID extracts the 11-character video ID from a YouTube URL.
// Inputs that do not look like a URL are returned as-is, so bare IDs pass
// through unchanged.
func ResolveVideoID(input string) string {
	if m := videoIDPattern.FindStringSubmatch(input); len(m) == 2 {
		return m[1]
	}
	return input
}

// CanonicalURL returns the short watch URL for a video ID.
func CanonicalURL(videoID string) string {
	return "https://youtu.be/" + videoID
}
