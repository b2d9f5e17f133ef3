// Package checksum computes the content digests used for end-to-end
// integrity verification of IQ capture files.
package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
)

// chunkSize bounds memory use when digesting capture files, which routinely
// run to several gigabytes.
const chunkSize = 8192

// Sum returns the lowercase hexadecimal MD5 digest of data.
func Sum(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// SumFile returns the lowercase hexadecimal MD5 digest of the file at path,
// folding the content into the hash state in fixed-size chunks. Filesystem
// errors are returned to the caller as-is.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := md5.New()
	buf := make([]byte, chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
