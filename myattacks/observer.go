package myattacks

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// TrialEvent описывает завершённое испытание
type TrialEvent struct {
	Attack string
	Bits   int
	Index  int
	Trial  Trial
}

// Observer получает уведомление после каждого испытания
type Observer interface {
	TrialDone(ev TrialEvent)
}

// ObserverFunc позволяет использовать функцию как Observer
type ObserverFunc func(TrialEvent)

func (f ObserverFunc) TrialDone(ev TrialEvent) { f(ev) }

// PrintObserver печатает число попыток, по строке на испытание
func PrintObserver(w io.Writer) Observer {
	return ObserverFunc(func(ev TrialEvent) {
		if ev.Trial.Exhausted {
			fmt.Fprintf(w, "%d (cutoff)\n", ev.Trial.Attempts)
			return
		}
		fmt.Fprintln(w, ev.Trial.Attempts)
	})
}

// LogObserver пишет структурированную запись на уровне debug
func LogObserver(logger logrus.FieldLogger) Observer {
	return ObserverFunc(func(ev TrialEvent) {
		logger.WithFields(logrus.Fields{
			"attack":    ev.Attack,
			"bits":      ev.Bits,
			"trial":     ev.Index,
			"attempts":  ev.Trial.Attempts,
			"exhausted": ev.Trial.Exhausted,
		}).Debug("trial done")
	})
}

// MultiObserver рассылает событие всем непустым наблюдателям
func MultiObserver(observers ...Observer) Observer {
	return ObserverFunc(func(ev TrialEvent) {
		for _, o := range observers {
			if o != nil {
				o.TrialDone(ev)
			}
		}
	})
}
