package scene

// Object is anything a selection ray can be tested against.
type Object interface {
	Name() string
	// Intersect returns the hit point and its distance along the ray, or
	// ok=false when the ray misses.
	Intersect(r Ray) (point Vec3, dist float64, ok bool)
	// Children returns nested geometry for recursive casting. Top-level
	// casts ignore it.
	Children() []Object
}

const intersectEpsilon = 1e-9

// Panel is a flat quad facing its local +Z axis, side length 2*Half world
// units, centered on its transform's translation. The quiz canvas is
// textured onto it; ToLocal maps world hits back into panel-local 2D
// coordinates for hit-testing.
type Panel struct {
	name   string
	center Vec3
	right  Vec3
	up     Vec3
	normal Vec3
	half   float64
}

// NewPanel places a panel of physical half-extent half using the given world
// transform.
func NewPanel(name string, pose Mat4, half float64) *Panel {
	right := pose.TransformDir(Vec3{1, 0, 0}).Normalize()
	up := pose.TransformDir(Vec3{0, 1, 0}).Normalize()
	return &Panel{
		name:   name,
		center: pose.Position(),
		right:  right,
		up:     up,
		normal: right.Cross(up).Normalize(),
		half:   half,
	}
}

func (p *Panel) Name() string { return p.name }

// Half is the panel's physical half-extent in world units.
func (p *Panel) Half() float64 { return p.half }

func (p *Panel) Children() []Object { return nil }

// Intersect tests the ray against the panel's plane and bounds.
func (p *Panel) Intersect(r Ray) (Vec3, float64, bool) {
	denom := r.Dir.Dot(p.normal)
	if denom > -intersectEpsilon && denom < intersectEpsilon {
		return Vec3{}, 0, false
	}
	t := p.center.Sub(r.Origin).Dot(p.normal) / denom
	if t < intersectEpsilon {
		return Vec3{}, 0, false
	}
	point := r.At(t)
	x, y := p.ToLocal(point)
	if x < -p.half || x > p.half || y < -p.half || y > p.half {
		return Vec3{}, 0, false
	}
	return point, t, true
}

// ToLocal projects a world point onto the panel plane, returning 2D
// coordinates in [-Half, +Half] on both axes with +Y up.
func (p *Panel) ToLocal(world Vec3) (x, y float64) {
	rel := world.Sub(p.center)
	return rel.Dot(p.right), rel.Dot(p.up)
}

// Group is a compound object: it has no surface of its own, only nested
// children reachable through recursive casts.
type Group struct {
	name     string
	children []Object
}

func NewGroup(name string, children ...Object) *Group {
	return &Group{name: name, children: children}
}

func (g *Group) Name() string { return g.name }

func (g *Group) Children() []Object { return g.children }

// Add attaches an object to the group.
func (g *Group) Add(obj Object) { g.children = append(g.children, obj) }

// Remove detaches an object from the group, by identity.
func (g *Group) Remove(obj Object) {
	for i, child := range g.children {
		if child == obj {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return
		}
	}
}

// Intersect always misses; only the group's children carry geometry.
func (g *Group) Intersect(Ray) (Vec3, float64, bool) { return Vec3{}, 0, false }
