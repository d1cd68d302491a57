package board

import "math/bits"

func popcount(x uint64) int        { return bits.OnesCount64(x) }
func bitScanForward(x uint64) uint { return uint(bits.TrailingZeros64(x)) }
