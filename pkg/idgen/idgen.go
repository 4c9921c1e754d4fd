package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLen = 9
)

// New produces an identifier unique within the practical lifetime of a
// process: a millisecond timestamp joined with a 9-character base-36 random
// suffix. No coordination, no network, no error path.
func New() string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	buf := make([]byte, suffixLen)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a time-derived digit rather than panic.
			buf[i] = alphabet[time.Now().UnixNano()%int64(len(alphabet))]
			continue
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf)
}
