package wind

import (
	"math"
	"testing"
	"time"
)

func TestTwa(t *testing.T) {
	twa := Twa(90, 180)
	if twa != 90.0 {
		t.Errorf("Twa(90, 180) = %f; want 90", twa)
	}
	twa = Twa(350, 10)
	if twa != 20.0 {
		t.Errorf("Twa(350, 10) = %f; want 20", twa)
	}
	twa = Twa(10, 350)
	if twa != -20.0 {
		t.Errorf("Twa(10, 350) = %f; want -20", twa)
	}
}

func TestHeading(t *testing.T) {
	h := Heading(90, 180)
	if h != 90.0 {
		t.Errorf("Heading(90, 180) = %f; want 90", h)
	}
	h = Heading(-20, 350)
	if h != 10.0 {
		t.Errorf("Heading(-20, 350) = %f; want 10", h)
	}
}

func TestBilinearInterpolate(t *testing.T) {
	g00 := []float64{0, 0}
	g10 := []float64{2, 4}
	g01 := []float64{4, 8}
	g11 := []float64{6, 12}

	u, v := bilinearInterpolate(0.5, 0.5, g00, g10, g01, g11)
	if u != 3.0 || v != 6.0 {
		t.Errorf("bilinearInterpolate(0.5, 0.5) = (%f, %f); want (3, 6)", u, v)
	}

	u, v = bilinearInterpolate(0, 0, g00, g10, g01, g11)
	if u != 0.0 || v != 0.0 {
		t.Errorf("bilinearInterpolate(0, 0) = (%f, %f); want (0, 0)", u, v)
	}
}

func TestBuildGridContinuity(t *testing.T) {
	w := Wind{NLat: 2, NLon: 3, ΔLon: 120}

	grid := w.buildGrid([]float64{1, 2, 3, 4, 5, 6})

	if len(grid) != 2 || len(grid[0]) != 4 {
		t.Fatalf("buildGrid dims = (%d, %d); want (2, 4)", len(grid), len(grid[0]))
	}
	if grid[0][3] != grid[0][0] || grid[1][3] != grid[1][0] {
		t.Errorf("continuous grid not wrapped: %v", grid)
	}
}

func constantWind(date time.Time, u, v float64) *Wind {
	w := &Wind{Date: date, Lat0: 90, Lon0: 0, ΔLat: 1, ΔLon: 1, NLat: 181, NLon: 360}
	w.U = make([][]float64, w.NLat)
	w.V = make([][]float64, w.NLat)
	for j := uint32(0); j < w.NLat; j++ {
		w.U[j] = make([]float64, w.NLon+1)
		w.V[j] = make([]float64, w.NLon+1)
		for i := uint32(0); i <= w.NLon; i++ {
			w.U[j][i] = u
			w.V[j][i] = v
		}
	}
	return w
}

func TestForecast(t *testing.T) {
	now := time.Now()
	stamp := now.Format("2006010215")

	w := &Winds{
		winds: map[string]ForecastWinds{
			stamp: {constantWind(now, 3, 4)},
		},
	}

	u, v := w.Forecast(46.5, -1.8, 0)
	if math.Abs(u-3) > 1e-9 || math.Abs(v-4) > 1e-9 {
		t.Errorf("Forecast(46.5, -1.8, 0) = (%f, %f); want (3, 4)", u, v)
	}
}

func TestForecastNoWinds(t *testing.T) {
	w := &Winds{winds: map[string]ForecastWinds{}}

	u, v := w.Forecast(0, 0, 0)
	if u != 0 || v != 0 {
		t.Errorf("Forecast with no winds = (%f, %f); want (0, 0)", u, v)
	}
}
