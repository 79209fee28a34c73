package app

import (
	"math"
	"testing"
)

func TestDrag_PansCamera(t *testing.T) {
	cam := NewCamera(1, 800, 600)
	var d drag

	if d.update(&cam, pointer{Pressed: true, JustPressed: true, X: 400, Y: 300}) {
		t.Fatal("press moved the camera")
	}
	if !d.update(&cam, pointer{Pressed: true, X: 412, Y: 300}) {
		t.Fatal("drag did not move the camera")
	}
	// 12 pixels is one world unit at zoom 1 on a 600 pixel screen.
	if math.Abs(cam.Center.X+1) > 1e-6 {
		t.Errorf("center x = %v, want -1", cam.Center.X)
	}

	d.update(&cam, pointer{})
	if d.update(&cam, pointer{Pressed: true, X: 500, Y: 300}) {
		t.Error("first frame of a new press moved the camera")
	}
}

func TestWheelZoom(t *testing.T) {
	if wheelZoom(1) >= 1 || wheelZoom(-1) <= 1 || wheelZoom(0) != 1 {
		t.Errorf("wheelZoom = %v/%v/%v", wheelZoom(1), wheelZoom(-1), wheelZoom(0))
	}
}
