package render

import (
	"fmt"
	"time"

	"github.com/samvad-hq/samvad-headlines/internal/domain"
)

// FailureMessage is the only error text users see for a failed page load.
const FailureMessage = "Could not load news. Please try again."

const (
	publishedLayout = "Monday, January 2, 2006 3:04 PM"
	placeholderText = "[no image]"
)

// FormatPublished renders a timestamp in long form. The zero time renders empty.
func FormatPublished(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(publishedLayout)
}

// ErrorText maps a load error to user-facing text. Causes are not distinguished.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	return FailureMessage
}

// ImageText describes the image slot for an article.
func ImageText(img domain.Image) string {
	if img.Loaded {
		return fmt.Sprintf("%dx%d %s", img.Width, img.Height, img.Format)
	}
	return placeholderText
}
