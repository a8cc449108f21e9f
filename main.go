package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"github.com/gkirchou/vendeeglobe-bot/api"
	"github.com/gkirchou/vendeeglobe-bot/bot"
	"github.com/gkirchou/vendeeglobe-bot/course"
	"github.com/gkirchou/vendeeglobe-bot/land"
	"github.com/gkirchou/vendeeglobe-bot/polar"
	"github.com/gkirchou/vendeeglobe-bot/sim"
	"github.com/gkirchou/vendeeglobe-bot/wind"
	"github.com/gkirchou/vendeeglobe-bot/xmpp"

	_ "net/http/pprof"
)

func main() {

	fs := flag.NewFlagSet("vendeeglobe-bot", flag.ExitOnError)
	var (
		port         = fs.Int("port", 8888, "http listen port")
		courseFile   = fs.String("course", "", "course json file, defaults to the built-in course")
		gribDir      = fs.String("grib-data", "grib-data", "directory with grib2 forecast files")
		landFile     = fs.String("land", "land/output", "land mask file")
		polarFile    = fs.String("polar", "", "polar json file, defaults to the built-in polar")
		debug        = fs.Bool("debug", false, "debug logging")
		cpuprofile   = fs.Bool("cpuprofile", false, "profile the run endpoint")
		simulate     = fs.Bool("simulate", false, "sail the course offline and exit")
		maxHours     = fs.Float64("max-hours", 2160, "simulation time budget in hours")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
	)
	ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix())

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	c := course.Default()
	if *courseFile != "" {
		var err error
		c, err = course.Load(*courseFile)
		if err != nil {
			log.WithError(err).Fatalf("Error loading course '%s'", *courseFile)
		}
	}
	log.Infof("Course '%s' : %d checkpoints", c.Name, len(c.Checkpoints))

	x := xmpp.Xmpp{Config: xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}}
	var notifier bot.Notifier
	if x.Enabled() {
		notifier = x
	}

	b := bot.New(c, notifier)

	if *simulate {
		runSimulation(b, c, *polarFile, *gribDir, *maxHours)
		return
	}

	log.Info("Load lands")
	l, err := land.InitLand(*landFile)
	if err != nil {
		log.WithError(err).Warn("No land mask, the world map will report sea everywhere")
	}

	log.Info("Load winds")
	w := wind.InitWinds(*gribDir)

	router := api.InitServer(*cpuprofile, b, w, l)

	log.Infof("Start server on port %d", *port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", *port), handlers.CORS()(handlers.LoggingHandler(os.Stdout, router))))
}

// runSimulation sails the course offline, with the polar driven by the
// loaded forecasts when there are any.
func runSimulation(b *bot.Bot, c *course.Course, polarFile string, gribDir string, maxHours float64) {
	boat := polar.Default()
	if polarFile != "" {
		var err error
		boat, err = polar.Load(polarFile)
		if err != nil {
			log.WithError(err).Fatalf("Error loading polar '%s'", polarFile)
		}
	}

	log.Info("Load winds")
	w := wind.InitWinds(gribDir)

	s := sim.New(b, c.Start, sim.PolarSpeed(boat, w.Forecast))
	s.Forecast = w.Forecast

	elapsed := s.Run(maxHours, 1.0/60.0)
	log.Infof("Simulation done after %.1f hours, %d checkpoints remaining", elapsed, c.Remaining())
}
