package source

import (
	"fmt"

	"fortio.org/safecast"
)

// lineIndex stores the byte offset of every '\n' in a document.
type lineIndex []uint32

func buildLineIndex(content string) lineIndex {
	out := make(lineIndex, 0, len(content)/32+1)
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line index overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

// lineOf returns the 0-based line containing off.
func (idx lineIndex) lineOf(off uint32) int {
	// бинпоиск: находим количество переводов строки строго до off
	lo, hi := 0, len(idx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if idx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// lineStart returns the offset of the first byte of 0-based line.
func (idx lineIndex) lineStart(line int) uint32 {
	if line <= 0 {
		return 0
	}
	return idx[line-1] + 1
}

func (idx lineIndex) toLineCol(off uint32) LineCol {
	line := idx.lineOf(off)
	start := idx.lineStart(line)
	lineNo, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNo, Col: off - start + 1}
}
