// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/cycle.go
// Summary: Deterministic cycle-index resolution for animation tracks.
// Usage: Shared by the multi-axis and legacy animator paths.

package anim

import (
	"math"

	"github.com/charloom/charloom/grid"
)

// knuthHash is the multiplicative constant used for the deterministic
// pseudo-random modes. The same time segment always hashes to the same value,
// so replaying a timestamp replays the frame.
const knuthHash = 2654435761

func modFloor(n, m int64) int64 {
	if m <= 0 {
		return 0
	}
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// segmentAt converts a timestamp into a discrete cycle segment. Non-positive
// speeds degrade to 1 rather than failing; animation evaluation never raises.
func segmentAt(t, speed float64) int64 {
	if speed <= 0 {
		speed = 1
	}
	return int64(math.Floor(t / speed))
}

// CycleIndex resolves which list entry an animation track shows at time t.
// The caller has already folded the track's offset into t. Unrecognized modes
// fall back to forward.
func CycleIndex(t, speed float64, length int, mode grid.CycleMode) int {
	if length <= 0 {
		return 0
	}
	seg := segmentAt(t, speed)

	switch mode {
	case grid.CycleReverse:
		return length - 1 - int(modFloor(seg, int64(length)))
	case grid.CyclePingPong:
		if length <= 1 {
			return 0
		}
		period := int64(length*2 - 2)
		pos := modFloor(seg, period)
		if pos < int64(length) {
			return int(pos)
		}
		return int(period - pos)
	case grid.CycleRandom:
		hash := uint32(uint64(seg) * knuthHash)
		return int(hash % uint32(length))
	default:
		return int(modFloor(seg, int64(length)))
	}
}
