// SPDX-License-Identifier: MIT

package chain

import "strings"

// SlotLabel names chain slot i spreadsheet-style: 0→"A", 25→"Z", 26→"AA".
// Negative slots yield "".
func SlotLabel(i int) string {
	if i < 0 {
		return ""
	}
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append(buf, byte('A'+(n-1)%26))
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}

	return string(buf)
}

// prefixLabel names the left operand of stage m: the label of slot 0 for the
// first stage, the concatenated labels of the folded prefix afterwards.
func prefixLabel(label func(int) string, m int) string {
	var b strings.Builder
	for i := 0; i < m; i++ {
		b.WriteString(label(i))
	}

	return b.String()
}
