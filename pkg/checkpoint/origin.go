package checkpoint

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// NormalizeOrigin canonicalizes a checkpoint origin the same way a
// domain name is canonicalized before use as a note signer name:
// Unicode NFKC normalization, lowercasing, and an A-label/U-label
// round trip through IDNA. The result is the U-label form; it is
// rejected if that form is not NFKC-normalized or not all lowercase.
// An origin that isn't a domain name (it contains a space,
// e.g. "go.sum database tree") passes through NFKC+lowercase only.
func NormalizeOrigin(origin string) (string, error) {
	n := norm.NFKC.String(origin)
	l := strings.ToLower(n)
	if strings.ContainsAny(l, " \t") {
		return l, nil
	}
	a, err := idna.ToASCII(l)
	if err != nil {
		return "", fmt.Errorf("failed converting origin %q to a-label form: %v", l, err)
	}
	u, err := idna.ToUnicode(a)
	if err != nil {
		return "", fmt.Errorf("failed converting origin %q to u-label form: %v", a, err)
	}
	if !norm.NFKC.IsNormalString(u) {
		return "", fmt.Errorf("a-label origin %q was decoded to un-normalized unicode %q", a, u)
	}
	if strings.ToLower(u) != u {
		return "", fmt.Errorf("a-label origin %q was decoded to not all-lowercase unicode %q", a, u)
	}
	return u, nil
}
