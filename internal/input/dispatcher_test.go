package input_test

import (
	"math"
	"testing"

	"vr-quiz-engine/internal/input"
	"vr-quiz-engine/internal/scene"
)

func testCamera() scene.Camera {
	return scene.Camera{
		Position: scene.Vec3{Y: 1.6},
		Forward:  scene.Vec3{Z: -1},
		Up:       scene.Vec3{Y: 1},
		FOVY:     60 * math.Pi / 180,
		Aspect:   1,
	}
}

func TestPointerSelectDispatchesHit(t *testing.T) {
	panel := scene.NewPanel("panel", scene.Translation(0, 1.6, -2), 0.8)
	d := input.NewDispatcher()
	d.SetInteractive(panel)

	var gotObj scene.Object
	var gotPoint scene.Vec3
	d.OnSelection(func(obj scene.Object, point scene.Vec3) {
		gotObj, gotPoint = obj, point
	})

	d.PointerSelect(testCamera(), 0, 0)
	if gotObj != scene.Object(panel) {
		t.Fatalf("expected panel dispatched, got %v", gotObj)
	}
	if math.Abs(gotPoint.Z-(-2)) > 1e-9 {
		t.Fatalf("expected hit on the panel plane, got %v", gotPoint)
	}
}

func TestPointerSelectDescendsIntoGroups(t *testing.T) {
	panel := scene.NewPanel("panel", scene.Translation(0, 1.6, -2), 0.8)
	group := scene.NewGroup("rig", panel)
	d := input.NewDispatcher()
	d.SetInteractive(group)

	pointerHits := 0
	d.OnSelection(func(scene.Object, scene.Vec3) { pointerHits++ })

	d.PointerSelect(testCamera(), 0, 0)
	if pointerHits != 1 {
		t.Fatalf("pointer path must test nested geometry, hits=%d", pointerHits)
	}

	// The controller path tests top-level objects only.
	pose := scene.LookPose(scene.Vec3{Y: 1.6}, scene.Vec3{Z: -1})
	d.ControllerSelect(pose)
	if pointerHits != 1 {
		t.Fatalf("controller path must not descend into children, hits=%d", pointerHits)
	}
}

func TestControllerSelectDispatchesTopLevel(t *testing.T) {
	panel := scene.NewPanel("panel", scene.Translation(0, 1.6, -2), 0.8)
	d := input.NewDispatcher()
	d.SetInteractive(panel)

	hits := 0
	d.OnSelection(func(scene.Object, scene.Vec3) { hits++ })

	d.ControllerSelect(scene.LookPose(scene.Vec3{Y: 1.6}, scene.Vec3{Z: -1}))
	if hits != 1 {
		t.Fatalf("expected one dispatch, got %d", hits)
	}
}

func TestNoHandlerAndNoHitAreSilent(t *testing.T) {
	panel := scene.NewPanel("panel", scene.Translation(0, 1.6, -2), 0.8)
	d := input.NewDispatcher()
	d.SetInteractive(panel)

	// No handler registered: nothing happens, no panic.
	d.PointerSelect(testCamera(), 0, 0)

	hits := 0
	d.OnSelection(func(scene.Object, scene.Vec3) { hits++ })

	// Ray away from the panel: no dispatch.
	d.PointerSelect(testCamera(), 1, 1)
	if hits != 0 {
		t.Fatalf("miss must not dispatch, got %d", hits)
	}
}

func TestSetInteractiveClearsStaleTargets(t *testing.T) {
	panel := scene.NewPanel("panel", scene.Translation(0, 1.6, -2), 0.8)
	d := input.NewDispatcher()
	d.SetInteractive(panel)

	hits := 0
	d.OnSelection(func(scene.Object, scene.Vec3) { hits++ })

	d.SetInteractive()
	d.PointerSelect(testCamera(), 0, 0)
	d.ControllerSelect(scene.LookPose(scene.Vec3{Y: 1.6}, scene.Vec3{Z: -1}))
	if hits != 0 {
		t.Fatalf("cleared candidate set must never dispatch, got %d", hits)
	}
}
