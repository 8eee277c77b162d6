package connect

import "regexp"

// Malaysian mobile numbers: an optional +6 country prefix, the 01x carrier
// prefix, then seven digits (011 numbers carry eight). Dashes between the
// prefix and the subscriber digits are tolerated.
var (
	mobileSevenRe = regexp.MustCompile(`^(\+?6?01)[02-46-9]-*[0-9]{7}$`)
	mobileEightRe = regexp.MustCompile(`^(\+?6?01)[1]-*[0-9]{8}$`)
)

// ValidMobile reports whether s is a well-formed Malaysian mobile number.
func ValidMobile(s string) bool {
	return mobileSevenRe.MatchString(s) || mobileEightRe.MatchString(s)
}
