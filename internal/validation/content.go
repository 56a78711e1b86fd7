// Package validation holds input rules shared by the services.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxPostLength     = 5000
	MaxCommentLength  = 2000
	MaxQuestionLength = 280
	MaxOptionLength   = 80
	MaxNameLength     = 50
	MaxPromptLength   = 1000
)

var dataImageRegex = regexp.MustCompile(`^data:image/(jpeg|png|gif|webp);base64,[A-Za-z0-9+/]+=*$`)

// ValidateText checks that s is non-blank and at most limit characters.
func ValidateText(field, s string, limit int) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return ValidateLength(field, s, limit)
}

// ValidateLength checks that s is at most limit characters.
func ValidateLength(field, s string, limit int) error {
	if utf8.RuneCountInString(s) > limit {
		return fmt.Errorf("%s too long (max %d characters)", field, limit)
	}
	return nil
}

// ValidateImageRef accepts absolute http(s) URLs and base64 image data URIs.
func ValidateImageRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return fmt.Errorf("image is required")
	}
	if strings.HasPrefix(ref, "data:") {
		if !dataImageRegex.MatchString(ref) {
			return fmt.Errorf("image data must be a base64 jpeg, png, gif or webp data URI")
		}
		return nil
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image must be an http(s) URL or a data URI")
	}
	return nil
}
