package geom

// Camera holds the perspective parameters for Project.
type Camera struct {
	Width, Height float64 // viewport size in device units
	FOV           float64
	Distance      float64 // viewer distance from the origin along Z
}

// DefaultCamera fills the 4096x4096 device space with the viewer four units
// from the origin.
func DefaultCamera() Camera {
	return Camera{Width: 4096, Height: 4096, FOV: 4096, Distance: 4}
}

// Project maps p onto the viewport with a perspective divide. The Y axis is
// flipped so that +Y points up on the device. The input depth is kept in Z.
//
// When distance+z is zero the divide produces an infinite or NaN coordinate;
// this is passed through unchanged and later wraps deterministically in the
// encoder.
func Project(p Point3D, width, height, fov, distance float64) Point3D {
	factor := fov / (distance + p.Z)
	return Point3D{
		X: p.X*factor + width/2,
		Y: -p.Y*factor + height/2,
		Z: p.Z,
	}
}

// Project is Project with the camera's parameters.
func (c Camera) Project(p Point3D) Point3D {
	return Project(p, c.Width, c.Height, c.FOV, c.Distance)
}

func (p Point3D) Project(cam Camera) Point3D {
	return cam.Project(p)
}

func (l Line3D) Project(cam Camera) Line3D {
	return Line3D{cam.Project(l.P1), cam.Project(l.P2)}
}
