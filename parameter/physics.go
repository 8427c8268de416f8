package parameter

// Sandbox Scene Physics (world units: 1 unit = 1 terminal cell horizontally)
const (
	// Gravity is downward acceleration in units/s²
	Gravity = 30.0

	// Restitution is the velocity fraction kept on bounce
	Restitution = 0.7

	// BallRadius is the collision radius of the launched ball
	BallRadius = 0.5

	// LaunchSpeedX and LaunchSpeedY form the initial ball velocity in units/s
	LaunchSpeedX = 22.0
	LaunchSpeedY = 26.0

	// MaxBallSpeed caps ball speed so bounces never outrun the swept trigger test
	MaxBallSpeed = 60.0

	// KickSpeedY is the upward velocity added by a kick
	KickSpeedY = 18.0

	// HoopRadius is the trigger sphere radius around the hoop center
	HoopRadius = 3.0

	// HoopOffsetX is the hoop distance from the launch point, as a fraction of scene width
	HoopOffsetX = 0.6
)
