package integrity

import (
	"github.com/opencontainers/go-digest"

	"github.com/meigma/asar/internal/asartype"
)

// Verify checks data against rec.
//
// With checkBlocks, data is split into rec.BlockSize chunks and each chunk is
// compared with the digest at the same position in rec.Blocks; the result
// records the first mismatching index. The whole-data digest is always
// computed and compared. An unsupported algorithm yields a result whose
// Actual digest is empty, so it never verifies.
func Verify(data []byte, rec asartype.Integrity, checkBlocks bool) asartype.Result {
	res := asartype.Result{
		Block:         -1,
		BlocksChecked: checkBlocks,
		Expected:      rec.Hash,
	}
	alg, ok := rec.Algorithm.Digest()
	if !ok {
		return res
	}
	if checkBlocks {
		res.Block = firstBadBlock(alg, data, rec)
	}
	res.Actual = alg.FromBytes(data)
	return res
}

// firstBadBlock returns the index of the first block whose digest differs,
// or -1. A block present on only one side counts as a mismatch. Empty data
// is a single empty block, though an empty block list is also accepted.
func firstBadBlock(alg digest.Algorithm, data []byte, rec asartype.Integrity) int {
	if rec.BlockSize <= 0 {
		return 0
	}
	if len(data) == 0 && len(rec.Blocks) == 0 {
		return -1
	}
	i := 0
	for {
		end := min(rec.BlockSize, len(data))
		if i >= len(rec.Blocks) {
			return i
		}
		if alg.FromBytes(data[:end]) != rec.Blocks[i] {
			return i
		}
		data = data[end:]
		i++
		if len(data) == 0 {
			break
		}
	}
	if i < len(rec.Blocks) {
		return i
	}
	return -1
}
