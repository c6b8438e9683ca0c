package matchservice

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var compactClock = regexp.MustCompile(`\b(\d{1,2})(\d{2})\s?(am|pm)\b`)

// parseTeeTime reads natural-language tee times ("tomorrow at 8am", "saturday 9:30 am")
// relative to now in loc.
func parseTeeTime(text string, now time.Time, loc *time.Location) (time.Time, error) {
	input := strings.ToLower(strings.TrimSpace(text))
	input = compactClock.ReplaceAllString(input, "$1:$2 $3")

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(input, now.In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTeeTime, text, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTeeTime, text)
	}
	return r.Time.In(loc).Truncate(time.Minute), nil
}
