package services

import "strings"

// ExtractYouTubeID lấy video id từ hai dạng URL chuẩn:
// https://www.youtube.com/watch?v=<id> và https://youtu.be/<id>.
// URL khác trả về RequestError{invalid_reference}.
func ExtractYouTubeID(youtubeURL string) (string, error) {
	var videoID string

	switch {
	case strings.Contains(youtubeURL, "youtube.com/watch?v="):
		part := strings.SplitN(youtubeURL, "v=", 2)[1]
		videoID = strings.SplitN(part, "&", 2)[0]
	case strings.Contains(youtubeURL, "youtu.be/"):
		part := strings.SplitN(youtubeURL, "youtu.be/", 2)[1]
		videoID = strings.SplitN(part, "?", 2)[0]
	}

	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", &RequestError{Reason: ReasonInvalidReference, Message: "Invalid YouTube URL"}
	}
	return videoID, nil
}
