// Package hasher derives short content hashes for preview file names and
// the art digest recorded in run reports.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// NameLen is the number of hex chars used in content-addressed names.
const NameLen = 16

// ContentHash returns the xxHash64 of data as hex, truncated to hexLen
// chars when 0 < hexLen < 16.
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader is ContentHash over a stream.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// Rows hashes text rows as they would be printed, one per line. Two runs
// with equal digests drew the same art.
func Rows(rows []string) string {
	h := xxhash.New()
	for _, row := range rows {
		h.WriteString(row)
		h.WriteString("\n")
	}
	return format(h.Sum64(), 0)
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
