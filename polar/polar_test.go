package polar

import (
	"math"
	"testing"
)

func TestInterpolationIndex(t *testing.T) {

	array := []float64{0, 4, 8}

	i0, i1, d := interpolationIndex(array, 0)
	if i0 != 0 || i1 != 0 || d != 0.0 {
		t.Errorf("interpolationIndex(0) = (%d, %d, %f); want (0, 0, 0.0)", i0, i1, d)
	}

	i0, i1, d = interpolationIndex(array, 1)
	if i0 != 0 || i1 != 1 || d != 0.75 {
		t.Errorf("interpolationIndex(1) = (%d, %d, %f); want (0, 1, 0.75)", i0, i1, d)
	}

	i0, i1, d = interpolationIndex(array, 6)
	if i0 != 1 || i1 != 2 || d != 0.5 {
		t.Errorf("interpolationIndex(6) = (%d, %d, %f); want (1, 2, 0.5)", i0, i1, d)
	}

	i0, i1, d = interpolationIndex(array, 8)
	if i0 != 1 || i1 != 2 || d != 0.0 {
		t.Errorf("interpolationIndex(8) = (%d, %d, %f); want (1, 2, 0.0)", i0, i1, d)
	}

	i0, i1, d = interpolationIndex(array, 9)
	if i0 != 2 || i1 != 0 || d != 1.0 {
		t.Errorf("interpolationIndex(9) = (%d, %d, %f); want (2, 0, 1.0)", i0, i1, d)
	}
}

func TestBoatSpeed(t *testing.T) {
	boat := Default()

	bs := boat.BoatSpeed(0, 10/msToKts)
	if bs != 0 {
		t.Errorf("BoatSpeed(0, 10kt) = %f; want 0", bs)
	}

	// 11 kts at twa 90, tws 10 kts
	bs = boat.BoatSpeed(90, 10/msToKts)
	if math.Abs(bs-11*ktsToKmh) > 1e-6 {
		t.Errorf("BoatSpeed(90, 10kt) = %f; want %f", bs, 11*ktsToKmh)
	}

	// twa folds to [0, 180]
	port := boat.BoatSpeed(-90, 10/msToKts)
	if math.Abs(port-bs) > 1e-9 {
		t.Errorf("BoatSpeed(-90, 10kt) = %f; want %f", port, bs)
	}
	wrapped := boat.BoatSpeed(270, 10/msToKts)
	if math.Abs(wrapped-bs) > 1e-9 {
		t.Errorf("BoatSpeed(270, 10kt) = %f; want %f", wrapped, bs)
	}
}

func TestBoatSpeedMaxSpeed(t *testing.T) {
	boat := Default()
	boat.MaxSpeed = 10

	bs := boat.BoatSpeed(120, 20/msToKts)
	if math.Abs(bs-10*ktsToKmh) > 1e-9 {
		t.Errorf("BoatSpeed(120, 20kt) capped = %f; want %f", bs, 10*ktsToKmh)
	}
}
