package common

import "strings"

// MediaFileType is the kind of blob a post may reference.
type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "image"
	MediaFileTypeVideo MediaFileType = "video"
)

func (mft MediaFileType) String() string {
	return string(mft)
}

func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage || mft == MediaFileTypeVideo
}

// DetectFileType classifies a MIME type. Anything that is not an image or a
// video is rejected by the upload handler.
func DetectFileType(mimeType string) (MediaFileType, bool) {
	lower := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(lower, "image/"):
		return MediaFileTypeImage, true
	case strings.HasPrefix(lower, "video/"):
		return MediaFileTypeVideo, true
	default:
		return "", false
	}
}
