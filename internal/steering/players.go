package steering

import "github.com/ayusman/volante/internal/detector"

// MaxPlayers is the number of player slots the controller drives.
const MaxPlayers = 2

// PlayerID determines which player a detection belongs to by which half
// of the frame its wrist midpoint falls in: the left half is player 0,
// the right half player 1. Returns false if the midpoint cannot be
// computed.
func PlayerID(det detector.Detection) (int, bool) {
	center, ok := WristCenter(det)
	if !ok {
		return 0, false
	}

	if center.X < 0.5 {
		return 0, true
	}
	return 1, true
}

// SplitDetections assigns detections to the player slots. Unoccupied
// slots are left nil. Detections without a computable wrist midpoint are
// dropped.
func SplitDetections(detections []detector.Detection) [MaxPlayers]detector.Detection {
	var byPlayer [MaxPlayers]detector.Detection

	for _, det := range detections {
		playerID, ok := PlayerID(det)
		if !ok {
			continue
		}

		// Pick the first detection that falls in the player's half.
		// This is an arbitrary heuristic, but works well in practice.
		if byPlayer[playerID] == nil {
			byPlayer[playerID] = det
		}
	}

	return byPlayer
}
