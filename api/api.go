package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/gkirchou/vendeeglobe-bot/api/model"
	"github.com/gkirchou/vendeeglobe-bot/bot"
	"github.com/gkirchou/vendeeglobe-bot/land"
	"github.com/gkirchou/vendeeglobe-bot/wind"
)

type server struct {
	cpuprofile bool
	b          *bot.Bot
	w          *wind.Winds
	l          *land.Land
}

// InitServer wires the routes. winds and lands may be nil : the bot then runs
// with a calm forecast and an all-sea world map.
func InitServer(cpuprofile bool, b *bot.Bot, w *wind.Winds, l *land.Land) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{
		cpuprofile: cpuprofile,
		b:          b,
		w:          w,
		l:          l,
	}

	api := router.PathPrefix("/").Subrouter()

	api.HandleFunc("/bot/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/bot/api/v1").Subrouter()
	apiV1.HandleFunc("/run", s.run).Methods("POST")
	apiV1.HandleFunc("/course", s.course).Methods("GET")
	apiV1.HandleFunc("/reset", s.reset).Methods("POST")
	apiV1.HandleFunc("/wind/{stamp}/{lat}/{lon}", s.wind).Methods("GET")

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	json.NewEncoder(w).Encode(health{Status: "Ok"})
}

func (s *server) forecast() bot.Forecast {
	if s.w == nil {
		return func(latitude, longitude, hours float64) (float64, float64) {
			return 0, 0
		}
	}
	return s.w.Forecast
}

func (s *server) worldMap() bot.WorldMap {
	if s.l == nil {
		return func(latitude, longitude float64) int {
			return 1
		}
	}
	return s.l.Sea
}

func (s *server) run(w http.ResponseWriter, req *http.Request) {
	if s.cpuprofile {
		defer profile.Start().Stop()
	}

	fields := log.Fields{
		"action": "run",
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	requestLogger := log.WithFields(fields)

	var state model.State
	if err := json.NewDecoder(req.Body).Decode(&state); err != nil {
		requestLogger.WithError(err).Error("Error decoding state")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var vector bot.Vector
	if len(state.Vector) == 2 {
		vector = bot.Vector{U: state.Vector[0], V: state.Vector[1]}
	}

	instructions := s.b.Run(state.T, state.Dt, state.Longitude, state.Latitude, state.Heading, state.Speed, vector, s.forecast(), s.worldMap())

	requestLogger.Debugf("Run t=%.2f (%.4f,%.4f) speed %.1f : sail %.2f", state.T, state.Latitude, state.Longitude, state.Speed, instructions.Sail)

	json.NewEncoder(w).Encode(instructions)
}

func (s *server) course(w http.ResponseWriter, req *http.Request) {
	json.NewEncoder(w).Encode(s.b.Course())
}

func (s *server) reset(w http.ResponseWriter, req *http.Request) {
	log.Info("Reset course")
	s.b.Reset()

	json.NewEncoder(w).Encode(s.b.Course())
}

func (s *server) wind(w http.ResponseWriter, r *http.Request) {
	stamp := mux.Vars(r)["stamp"]

	lat, err := strconv.ParseFloat(mux.Vars(r)["lat"], 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(mux.Vars(r)["lon"], 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if s.w == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	type windResult struct {
		Wind  float64 `json:"wind"`
		Speed float64 `json:"speed"`
	}

	ws := s.w.Winds(stamp)
	if ws == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var res windResult
	res.Wind, res.Speed = wind.Interpolate(ws, nil, lat, lon, 0)
	res.Speed *= 1.9438444924406

	log.Infof("Wind %s (%f,%f) : %.1f° %.1f kt", stamp, lat, lon, res.Wind, res.Speed)

	json.NewEncoder(w).Encode(res)
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
