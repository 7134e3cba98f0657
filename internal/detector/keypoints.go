// Package detector provides body pose detection interfaces and types.
package detector

// KeypointLabel identifies one of the 17 body keypoints in the COCO
// convention used by MoveNet.
// See: https://www.tensorflow.org/hub/tutorials/movenet
type KeypointLabel string

const (
	Nose          KeypointLabel = "NOSE"
	LeftEye       KeypointLabel = "LEFT_EYE"
	RightEye      KeypointLabel = "RIGHT_EYE"
	LeftEar       KeypointLabel = "LEFT_EAR"
	RightEar      KeypointLabel = "RIGHT_EAR"
	LeftShoulder  KeypointLabel = "LEFT_SHOULDER"
	RightShoulder KeypointLabel = "RIGHT_SHOULDER"
	LeftElbow     KeypointLabel = "LEFT_ELBOW"
	RightElbow    KeypointLabel = "RIGHT_ELBOW"
	LeftWrist     KeypointLabel = "LEFT_WRIST"
	RightWrist    KeypointLabel = "RIGHT_WRIST"
	LeftHip       KeypointLabel = "LEFT_HIP"
	RightHip      KeypointLabel = "RIGHT_HIP"
	LeftKnee      KeypointLabel = "LEFT_KNEE"
	RightKnee     KeypointLabel = "RIGHT_KNEE"
	LeftAnkle     KeypointLabel = "LEFT_ANKLE"
	RightAnkle    KeypointLabel = "RIGHT_ANKLE"
)

// cocoOrder maps MoveNet output indices to keypoint labels.
var cocoOrder = [17]KeypointLabel{
	Nose, LeftEye, RightEye, LeftEar, RightEar,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow,
	LeftWrist, RightWrist, LeftHip, RightHip,
	LeftKnee, RightKnee, LeftAnkle, RightAnkle,
}

// Point is a keypoint position in relative image coordinates. The frame
// spans [0, 1] on both axes, but points may fall outside that range when
// a limb extends past the frame edge.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Detection holds the keypoints of one detected person. A label absent
// from the map means the keypoint was not observed in this frame; low
// confidence points are dropped before a Detection is built, never
// reported with degraded coordinates.
type Detection map[KeypointLabel]Point
