// SPDX-License-Identifier: MIT

package chain

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
	"github.com/katalvlaran/matstep/matrix"
)

// traceNamespace scopes name-based Trace IDs to this package.
var traceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/katalvlaran/matstep/chain/trace"))

// traceID derives a version-5 UUID from the canonical encoding of the chain:
// for each matrix its rows and cols (uint32, big-endian) followed by the
// IEEE-754 bits of every value in row-major order.
func traceID(inputs []*matrix.Dense) uuid.UUID {
	size := 0
	for _, m := range inputs {
		size += 8 + 8*m.Rows()*m.Cols()
	}
	buf := make([]byte, 0, size)
	for _, m := range inputs {
		buf = binary.BigEndian.AppendUint32(buf, uint32(m.Rows()))
		buf = binary.BigEndian.AppendUint32(buf, uint32(m.Cols()))
		for _, row := range m.ToRows() {
			for _, v := range row {
				buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
			}
		}
	}

	return uuid.NewSHA1(traceNamespace, buf)
}
