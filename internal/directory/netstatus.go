package directory

import (
	"regexp"
	"strconv"
	"strings"
)

// NET_API_STATUS values the netapi backend distinguishes.
const (
	netStatusAccessDenied     = 5
	netStatusBadPassword      = 2203
	netStatusUserNotFound     = 2221
	netStatusPasswordTooShort = 2245
)

var trailingStatus = regexp.MustCompile(`(\d+)\s*$`)

// classifyNetAPI maps the text of a go-win64api error, which ends in the
// raw NET_API_STATUS for set-info calls, to a Kind.
func classifyNetAPI(text string) Kind {
	if m := trailingStatus.FindStringSubmatch(text); m != nil {
		code, _ := strconv.Atoi(m[1])
		switch code {
		case netStatusAccessDenied:
			return KindAccessDenied
		case netStatusBadPassword, netStatusPasswordTooShort:
			return KindComplexity
		case netStatusUserNotFound:
			return KindNotFound
		}
	}
	// The flag lookup behind UserDisabled reports a missing account this way.
	if strings.Contains(text, "unable to get data structure") {
		return KindNotFound
	}
	return Classify(text)
}
