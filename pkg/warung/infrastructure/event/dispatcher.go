// Package event provides the process-local event dispatcher.
package event

import (
	"github.com/sirupsen/logrus"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/service"
)

// LogDispatcher writes every domain event to the structured log. It is the
// default dispatcher; a single-shop deployment has no message broker to
// publish to, but the event stream still makes an audit trail.
type LogDispatcher struct {
	log *logrus.Logger
}

func NewLogDispatcher(log *logrus.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Dispatch(event service.Event) error {
	d.log.WithFields(logrus.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
