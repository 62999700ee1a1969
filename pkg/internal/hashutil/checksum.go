package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"
)

// Prefix starts every checksum
const Prefix = "sha256:"

// Checksum returns the SHA256 checksum of data as "sha256:<hex>"
func Checksum(data []byte) string {
	return fmt.Sprintf("%s%x", Prefix, sha256.Sum256(data))
}

// ChecksumReader is Checksum over everything read from r
func ChecksumReader(r io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", Prefix, hash.Sum(nil)), nil
}
