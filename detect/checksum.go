package detect

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the checksum of raw fetched content used to skip
// checks whose input did not change.
func ComputeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

var whitespaceStripper = strings.NewReplacer("\r", "", "\n", "", "\t", "", " ", "")

// Digest returns the hex MD5 of text. When ignoreWhitespace is set, carriage
// returns, newlines, tabs and spaces are removed before hashing.
func Digest(text string, ignoreWhitespace bool) string {
	if ignoreWhitespace {
		text = whitespaceStripper.Replace(text)
	}
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
