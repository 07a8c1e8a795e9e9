// Copyright (C) 2025 Specter Ops, Inc.
//
// This file is part of ScopeHound.
//
// ScopeHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ScopeHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/rs/zerolog"

	"github.com/bloodhoundad/scopehound/config"
)

// GetLogger builds the process logger from the current configuration:
// console output by default, structured JSON with --json, optionally
// duplicated to a log file.
func GetLogger() (*logr.Logger, error) {
	var writers []io.Writer

	if jsonLogs, ok := config.JsonLogs.Value().(bool); ok && jsonLogs {
		writers = append(writers, os.Stderr)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if logFile, ok := config.LogFile.Value().(string); ok && logFile != "" {
		if file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		} else {
			writers = append(writers, file)
		}
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	logger := logr.New(&zerologSink{logger: &zl})
	return &logger, nil
}

// zerologSink adapts zerolog to the logr API the rest of the codebase
// logs through. Verbosity levels map onto zerolog levels: 0 is info,
// everything above is debug and gated by the --verbosity flag.
type zerologSink struct {
	logger *zerolog.Logger
	name   string
	values []interface{}
}

func (s *zerologSink) Init(info logr.RuntimeInfo) {}

func (s *zerologSink) Enabled(level int) bool {
	verbosity, ok := config.Verbosity.Value().(int)
	if !ok {
		verbosity = 0
	}
	return level <= verbosity
}

func (s *zerologSink) Info(level int, msg string, keysAndValues ...interface{}) {
	var event *zerolog.Event
	if level > 0 {
		event = s.logger.Debug()
	} else {
		event = s.logger.Info()
	}
	s.write(event, msg, keysAndValues)
}

func (s *zerologSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.write(s.logger.Error().Err(err), msg, keysAndValues)
}

func (s *zerologSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	return &zerologSink{
		logger: s.logger,
		name:   s.name,
		values: append(append([]interface{}{}, s.values...), keysAndValues...),
	}
}

func (s *zerologSink) WithName(name string) logr.LogSink {
	return &zerologSink{
		logger: s.logger,
		name:   name,
		values: s.values,
	}
}

func (s *zerologSink) write(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	if s.name != "" {
		event = event.Str("logger", s.name)
	}
	event = fields(event, s.values)
	event = fields(event, keysAndValues)
	event.Msg(msg)
}

func fields(event *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			event = event.Interface(key, keysAndValues[i+1])
		}
	}
	return event
}
