// Package input normalizes the two selection devices, desktop pointer and
// VR controller, into one "selection attempt at point P against object O"
// event consumed by whoever registered a handler.
package input

import "vr-quiz-engine/internal/scene"

// SelectionHandler receives the object hit by a selection ray and the world
// point where the ray landed.
type SelectionHandler func(obj scene.Object, point scene.Vec3)

// Dispatcher owns the mutable set of interactive objects and the single
// registered selection handler. It is driven from the host's event queue on
// the frame goroutine; it holds no locks.
type Dispatcher struct {
	targets []scene.Object
	handler SelectionHandler
}

func NewDispatcher() *Dispatcher { return &Dispatcher{} }

// OnSelection registers the handler. Passing nil unregisters it.
func (d *Dispatcher) OnSelection(handler SelectionHandler) { d.handler = handler }

// SetInteractive replaces the candidate set. Called with no arguments when
// the active panel goes away, so a disposed panel is never dispatched to.
func (d *Dispatcher) SetInteractive(objs ...scene.Object) {
	d.targets = append(d.targets[:0], objs...)
}

// PointerSelect handles a click-like event: a ray through the camera at the
// pointer's normalized device coordinates, tested recursively through nested
// geometry since a click may land on a sub-mesh of a compound object.
func (d *Dispatcher) PointerSelect(cam scene.Camera, ndcX, ndcY float64) {
	d.dispatch(scene.CastRecursive(cam.PointerRay(ndcX, ndcY), d.targets))
}

// ControllerSelect handles a controller trigger: a ray from the controller
// pose, tested against top-level objects only.
func (d *Dispatcher) ControllerSelect(pose scene.Mat4) {
	d.dispatch(scene.Cast(scene.ControllerRay(pose), d.targets))
}

func (d *Dispatcher) dispatch(hit scene.Hit, ok bool) {
	if !ok || d.handler == nil {
		return
	}
	d.handler(hit.Object, hit.Point)
}
