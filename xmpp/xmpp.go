package xmpp

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"
)

type (
	// Config for the notifier.
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	Xmpp struct {
		Config Config
	}
)

func serverName(jid string) string {
	return strings.Split(jid, "@")[1]
}

// Enabled tells whether enough config is present to send anything.
func (x Xmpp) Enabled() bool {
	return len(x.Config.Jid) > 0 && len(x.Config.Password) > 0 && len(x.Config.To) > 0
}

func (x Xmpp) Send(message string) error {

	if !x.Enabled() {
		log.Debug("missing xmpp config")

		return errors.New("missing xmpp config")
	}

	if len(x.Config.Host) == 0 {
		x.Config.Host = serverName(x.Config.Jid)
	}

	xmpp.DefaultConfig = tls.Config{
		InsecureSkipVerify: true,
	}

	options := xmpp.Options{
		Host:          x.Config.Host,
		User:          x.Config.Jid,
		Password:      x.Config.Password,
		NoTLS:         true,
		StartTLS:      true,
		Debug:         false,
		Session:       false,
		Status:        "xa",
		StatusMessage: "Sailing around the world.",
	}

	talk, err := options.NewClient()

	if err != nil {
		log.WithError(err).Error("Error creating xmpp client")

		return err
	}

	talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message})

	return nil
}

// CheckpointReached sends a progress message. Implements the bot notifier.
func (x Xmpp) CheckpointReached(name string, t float64) {
	if err := x.Send(fmt.Sprintf("Checkpoint '%s' reached after %.1f hours", name, t)); err != nil {
		log.WithError(err).Warnf("Error notifying checkpoint '%s'", name)
	}
}
