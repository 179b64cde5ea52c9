package common

import (
	"strings"

	"github.com/google/uuid"
)

func ValidatePostType(raw string) (*PostType, error) {
	if raw == "" {
		return nil, nil
	}
	pt := PostType(raw)
	if pt != PostTypeQuery && pt != PostTypeInsight {
		return nil, NewValidationError(`Invalid post_type. Must be "query" or "insight"`)
	}
	return &pt, nil
}

// ValidateFeedType checks the scope and, for city posts, returns the city the
// post is pinned to.
func ValidateFeedType(raw, viewerCity string) (FeedType, *string, error) {
	ft := FeedType(raw)
	if ft != FeedGlobal && ft != FeedCity {
		return "", nil, NewValidationError(`Invalid feed_type. Must be "global" or "city"`)
	}
	if ft == FeedGlobal {
		return ft, nil, nil
	}

	city := strings.TrimSpace(viewerCity)
	if city == "" {
		return "", nil, NewValidationError("City required for city feed posts. Set your city in profile.")
	}
	return ft, &city, nil
}

func ValidateReport(targetType, targetID, reason string) (TargetType, error) {
	tt := TargetType(targetType)
	if (tt != TargetPost && tt != TargetComment) || targetID == "" || strings.TrimSpace(reason) == "" {
		return "", NewValidationError("Invalid report: need target_type (post/comment), target_id, reason")
	}
	if _, err := uuid.Parse(targetID); err != nil {
		return "", NewValidationError("Invalid report: need target_type (post/comment), target_id, reason")
	}
	return tt, nil
}

// ParseID validates a path or body identifier. Store keys are canonical UUID strings.
func ParseID(raw, name string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", NewValidationError("invalid " + name + " id")
	}
	return id.String(), nil
}

// CheckText sanitises every field and runs the phrase filter over the decoded
// result, so entity-encoded phrases are caught too.
func CheckText(what string, fields ...string) ([]string, error) {
	out := make([]string, len(fields))
	for i, f := range fields {
		clean := SanitizeText(f)
		if res := FilterContent(plainText(clean)); res.Blocked {
			return nil, NewBlockedError(what+" blocked", res.Reason)
		}
		out[i] = clean
	}
	return out, nil
}
