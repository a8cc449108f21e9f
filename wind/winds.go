package wind

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"
)

// ForecastWinds holds the one or two grib files valid for the same stamp.
type ForecastWinds []*Wind

func (w ForecastWinds) String() string {
	res := ""
	res += w[0].Date.Format("2006010215") + "(" + w[0].File
	if len(w) > 1 {
		res += "," + w[1].File
	}
	res += ")"
	return res
}

// Winds keeps every loaded forecast, keyed by hour stamp, and refreshes
// itself from the grib directory in the background.
type Winds struct {
	dir   string
	winds map[string](ForecastWinds)
	lock  sync.RWMutex
}

func InitWinds(dir string) *Winds {
	w := &Winds{
		dir:   dir,
		winds: loadAll(dir),
		lock:  sync.RWMutex{},
	}

	s := gocron.NewScheduler()
	jobxx := s.Every(15).Seconds()
	jobxx.Do(w.Merge)

	go s.Start()

	return w
}

// FindWinds returns the forecasts bracketing m and the interpolation factor
// between them.
func (w *Winds) FindWinds(m time.Time) (ForecastWinds, ForecastWinds, float64) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	if len(w.winds) == 0 {
		return nil, nil, 0
	}

	stamp := m.Format("2006010215")

	keys := make([]string, 0, len(w.winds))
	for k := range w.winds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if keys[0] > stamp {
		return w.winds[keys[0]], nil, 0
	}
	for i := range keys {
		if keys[i] > stamp {
			h := m.Sub(w.winds[keys[i-1]][0].Date).Minutes()
			delta := w.winds[keys[i]][0].Date.Sub(w.winds[keys[i-1]][0].Date).Minutes()
			return w.winds[keys[i-1]], w.winds[keys[i]], h / delta
		}
	}
	return w.winds[keys[len(keys)-1]], nil, 0
}

// Winds returns the forecasts loaded for a stamp, for the debug endpoint.
func (w *Winds) Winds(stamp string) ForecastWinds {
	w.lock.RLock()
	defer w.lock.RUnlock()

	return w.winds[stamp]
}

// Forecast is the weather capability handed to the bot : u/v wind components
// in m/s at a position, hours ahead of now. Returns calm when no forecast is
// loaded.
func (w *Winds) Forecast(latitude, longitude, hours float64) (float64, float64) {
	m := time.Now().Add(time.Duration(hours * float64(time.Hour)))

	w1, w2, h := w.FindWinds(m)
	if w1 == nil {
		return 0, 0
	}
	return InterpolateUV(w1, w2, latitude, longitude, h)
}

// Merge rescans the grib directory, dropping forecasts whose file went away
// and loading the ones that appeared.
func (w *Winds) Merge() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	var toRemove []string
	for k, ws := range w.winds {
		if _, err := os.Stat(filepath.Join(w.dir, ws[0].File)); os.IsNotExist(err) {
			toRemove = append(toRemove, k)
		}
	}
	for _, k := range toRemove {
		log.Println("Remove from winds", k)
		delete(w.winds, k)
	}

	forecasts := listForecasts(w.dir)

	var keys []int
	for k := range forecasts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		for _, file := range forecasts[k] {
			d := strings.Split(file, ".")[0]
			date, _ := time.Parse("2006010215", d)
			f, _ := strconv.Atoi(strings.Split(file, ".")[1][1:])
			date = date.Add(time.Hour * time.Duration(f))
			sdate := date.Format("2006010215")

			ws, found := w.winds[sdate]
			if found {
				if len(ws) == 2 || ws[0].File == file {
					continue
				}
			}

			wind, err := Init(w.dir, date, file)
			if err != nil {
				log.WithError(err).Errorf("Error loading grib file '%s'", file)
			} else {
				log.Debugf("Init %s %s", sdate, wind.File)
				w.winds[sdate] = append(w.winds[sdate], &wind)
			}
		}
	}

	return nil
}

// listForecasts walks the grib directory and groups the usable files by
// forecast hour. Files more than 3 hours stale are skipped unless they are
// all we have.
func listForecasts(dir string) map[int][]string {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error walking file '%s'", path)
		} else if info.Mode().IsRegular() && !strings.HasSuffix(info.Name(), ".tmp") {
			files = append(files, info.Name())
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Error walking grib files")
		return nil
	}

	sort.Strings(files)

	forecasts := make(map[int][]string)

	for cpt, f := range files {

		parts := strings.Split(f, ".")
		if len(parts) < 2 {
			continue
		}

		h, err := strconv.Atoi(parts[1][1:])
		if err != nil {
			log.WithError(err).Errorf("Error getting hour from file '%s'", f)
			continue
		}
		t, err := time.Parse("2006010215", parts[0])
		if err != nil {
			log.WithError(err).Errorf("Error parsing date '%s'", parts[0])
			continue
		}

		t = t.Add(time.Hour * time.Duration(h))

		forecastHour := int(math.Round(t.Sub(time.Now()).Hours()))

		if forecastHour < -3 && cpt < len(files)-1 {
			continue
		}

		_, found := forecasts[forecastHour]

		// the previous forecast is kept even after a newer one arrives
		if !found || forecastHour >= 0 {
			forecasts[forecastHour] = append(forecasts[forecastHour], f)
		}
	}

	return forecasts
}

func loadAll(dir string) map[string](ForecastWinds) {
	winds := make(map[string](ForecastWinds))

	forecasts := listForecasts(dir)

	var keys []int
	for k := range forecasts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		for _, file := range forecasts[k] {
			d := strings.Split(file, ".")[0]
			date, _ := time.Parse("2006010215", d)
			f, _ := strconv.Atoi(strings.Split(file, ".")[1][1:])
			date = date.Add(time.Hour * time.Duration(f))
			sdate := date.Format("2006010215")
			wind, err := Init(dir, date, file)
			if err != nil {
				log.WithError(err).Errorf("Error loading grib file '%s'", file)
			} else {
				log.Debugf("Init %s %s", sdate, wind.File)
				winds[sdate] = append(winds[sdate], &wind)
			}
		}
	}
	return winds
}
