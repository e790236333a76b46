package scene

// Hit is the result of casting a ray into the scene.
type Hit struct {
	Object   Object
	Point    Vec3
	Distance float64
}

// Cast tests the ray against the given objects only and returns the nearest
// hit. Ties are broken by distance alone; objects in this domain do not
// overlap.
func Cast(r Ray, objects []Object) (Hit, bool) {
	best := Hit{Distance: -1}
	for _, obj := range objects {
		point, dist, ok := obj.Intersect(r)
		if !ok {
			continue
		}
		if best.Distance < 0 || dist < best.Distance {
			best = Hit{Object: obj, Point: point, Distance: dist}
		}
	}
	return best, best.Distance >= 0
}

// CastRecursive tests the ray against the objects and everything nested
// under them, so a hit on a sub-mesh of a compound object is found.
func CastRecursive(r Ray, objects []Object) (Hit, bool) {
	flat := make([]Object, 0, len(objects))
	var walk func([]Object)
	walk = func(objs []Object) {
		for _, obj := range objs {
			flat = append(flat, obj)
			walk(obj.Children())
		}
	}
	walk(objects)
	return Cast(r, flat)
}
