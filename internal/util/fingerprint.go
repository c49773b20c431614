package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Fingerprint derives a snippet's stable identity from its location, not its
// body: re-extracting an unchanged declaration yields the same id, so index
// updates are upserts. A declaration that moves lines or is renamed gets a
// new id.
func Fingerprint(file, class, method string, startLine int32) string {
	base := file + "|" + class + "|" + method + "|" + strconv.Itoa(int(startLine))
	h := sha256.Sum256([]byte(base))
	return hex.EncodeToString(h[:])
}
