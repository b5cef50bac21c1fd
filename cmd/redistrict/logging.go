// SPDX-License-Identifier: MIT
package main

import (
	logger "github.com/sirupsen/logrus"
)

// UTCFormatter stamps every entry in UTC.
type UTCFormatter struct {
	logger.Formatter
}

func (u UTCFormatter) Format(e *logger.Entry) ([]byte, error) {
	e.Time = e.Time.UTC()
	return u.Formatter.Format(e)
}

func newLogger(level string) (*logger.Logger, error) {
	l := logger.New()
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l.SetLevel(lvl)
	customFormatter := new(logger.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05.000"
	customFormatter.FullTimestamp = true
	l.SetFormatter(UTCFormatter{customFormatter})

	return l, nil
}
