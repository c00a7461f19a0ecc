package entity

import "math"

type Vec3 struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
	Z float64 `json:"z" mapstructure:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Quat 是单位四元数，表示朝向。
type Quat struct {
	X, Y, Z, W float64
}

func IdentityQuat() Quat {
	return Quat{W: 1}
}

// YawRotation 返回绕 Y 轴（竖直轴）旋转 degrees 度的朝向。
func YawRotation(degrees float64) Quat {
	half := degrees * math.Pi / 360
	return Quat{Y: math.Sin(half), W: math.Cos(half)}
}

// Mul 先应用 r 再应用 q。
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Yaw 返回绕 Y 轴的角度（度），范围 (-180, 180]。
func (q Quat) Yaw() float64 {
	siny := 2 * (q.W*q.Y + q.X*q.Z)
	cosy := 1 - 2*(q.Y*q.Y+q.X*q.X)
	return math.Atan2(siny, cosy) * 180 / math.Pi
}

// Forward 返回朝向对应的水平前进方向（+Z 为 0 度）。
func (q Quat) Forward() Vec3 {
	rad := q.Yaw() * math.Pi / 180
	return Vec3{X: math.Sin(rad), Z: math.Cos(rad)}
}

// Transform 是位置 + 朝向，出生点和坦克当前位姿都用它表示。
type Transform struct {
	Position Vec3
	Rotation Quat
}
