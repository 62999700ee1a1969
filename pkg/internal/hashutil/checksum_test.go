package hashutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	sum := Checksum([]byte("hello"))
	assert.Equal(t, "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", sum)
	assert.Len(t, sum, len(Prefix)+64)

	assert.Equal(t, "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
	assert.NotEqual(t, sum, Checksum([]byte("hello ")))
}

func TestChecksumReader(t *testing.T) {
	sum, err := ChecksumReader(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, Checksum([]byte("hello")), sum)
}
