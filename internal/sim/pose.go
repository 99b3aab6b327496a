package sim

import (
	"github.com/Faultbox/cydsim/internal/physics"
	"github.com/Faultbox/cydsim/internal/rig"
	"github.com/Faultbox/cydsim/pkg/math"
)

// PartPose is the world placement of one segment.
type PartPose struct {
	Part     rig.Part
	Position math.Vec3 // World position of the segment pivot
	Axis     math.Vec3
	Angle    float32
}

// Pose reports every segment as of the last Frame.
func (c *Context) Pose() []PartPose {
	poses := make([]PartPose, rig.NumParts)
	for p := rig.Part(0); p < rig.NumParts; p++ {
		seg := c.Skeleton.Segment(p)
		axis, angle := physics.PoseFromMatrix(seg.World())
		poses[p] = PartPose{
			Part:     p,
			Position: seg.World().TransformPoint(seg.Pivot()),
			Axis:     axis,
			Angle:    angle,
		}
	}
	return poses
}
