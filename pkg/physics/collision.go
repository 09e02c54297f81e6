package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pair 粗检测得到的候选碰撞对
type Pair struct {
	A, B *Body
}

// Broadphase 粗检测：从世界刚体中筛选候选碰撞对
type Broadphase interface {
	// Pairs 把候选对追加到 dst 并返回
	Pairs(bodies []*Body, dst []Pair) []Pair
}

// NaiveBroadphase 朴素粗检测：枚举所有至少包含一个动态刚体的刚体对
type NaiveBroadphase struct{}

// Pairs 实现 Broadphase
func (NaiveBroadphase) Pairs(bodies []*Body, dst []Pair) []Pair {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.IsStatic() && b.IsStatic() {
				continue
			}
			dst = append(dst, Pair{A: a, B: b})
		}
	}
	return dst
}

// contact 一个接触：Normal 从 Other 指向 Dynamic
type contact struct {
	Dynamic     *Body
	Other       *Body
	Normal      mgl64.Vec3
	Penetration float64
}

// collide 细检测，只处理球体参与的组合
func collide(a, b *Body) (contact, bool) {
	if a.IsStatic() {
		a, b = b, a
	}
	switch {
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeBox:
		return sphereBox(a, b)
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeSphere:
		return sphereSphere(a, b)
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeSphere && !b.IsStatic():
		return sphereBox(b, a)
	}
	return contact{}, false
}

func sphereBox(s, box *Body) (contact, bool) {
	r := s.Shape.Radius
	half := box.Shape.HalfExtents
	local := s.Position.Sub(box.Position)

	closest := mgl64.Vec3{
		clamp(local.X(), -half.X(), half.X()),
		clamp(local.Y(), -half.Y(), half.Y()),
		clamp(local.Z(), -half.Z(), half.Z()),
	}
	d := local.Sub(closest)
	dist := d.Len()

	if dist > 1e-12 {
		if dist >= r {
			return contact{}, false
		}
		return contact{Dynamic: s, Other: box, Normal: d.Mul(1 / dist), Penetration: r - dist}, true
	}

	// 球心在盒子内部：沿最浅的面推出
	best := math.Inf(1)
	var normal mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		for _, sign := range [2]float64{1, -1} {
			depth := half[axis] - sign*local[axis]
			if depth < best {
				best = depth
				normal = mgl64.Vec3{}
				normal[axis] = sign
			}
		}
	}
	return contact{Dynamic: s, Other: box, Normal: normal, Penetration: best + r}, true
}

func sphereSphere(a, b *Body) (contact, bool) {
	d := a.Position.Sub(b.Position)
	dist := d.Len()
	sum := a.Shape.Radius + b.Shape.Radius
	if dist >= sum {
		return contact{}, false
	}
	normal := mgl64.Vec3{0, 0, 1}
	if dist > 1e-12 {
		normal = d.Mul(1 / dist)
	}
	return contact{Dynamic: a, Other: b, Normal: normal, Penetration: sum - dist}, true
}

// resolveContact 位置投影并去掉沿法线指向对方的相对速度（无弹性）
func resolveContact(c contact) {
	a, b := c.Dynamic, c.Other
	wa, wb := invMass(a), invMass(b)
	total := wa + wb
	if total == 0 {
		return
	}

	correction := c.Normal.Mul(c.Penetration / total)
	a.Position = a.Position.Add(correction.Mul(wa))
	b.Position = b.Position.Sub(correction.Mul(wb))

	rel := a.Velocity.Sub(b.Velocity)
	vn := rel.Dot(c.Normal)
	if vn >= 0 {
		return
	}
	impulse := c.Normal.Mul(-vn / total)
	a.Velocity = a.Velocity.Add(impulse.Mul(wa))
	b.Velocity = b.Velocity.Sub(impulse.Mul(wb))
}

func invMass(b *Body) float64 {
	if b.IsStatic() {
		return 0
	}
	return 1 / b.Mass
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
