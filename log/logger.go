/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package log contains a simple leveled, scoped logging facility. Log
messages are handled by the most specific scoped sink that allows the
message's level.

	logger := log.GetLogger("graphstore/store")
	logger.AddSink(log.Info, log.SimpleFormatter(), os.Stderr)
	logger.Info("store started")

Sinks are invoked synchronously on the logging goroutine, which may
hold a store's write lock (the subscription bus logs dropped events
from inside Publish), so sinks are expected to be cheap (an in-memory
ring buffer, stderr).
*/
package log

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

/*
Level represents a logging level.
*/
type Level string

/*
Log levels, most to least severe ordering is Error, Warning, Info, Debug.
*/
const (
	Debug   Level = "Debug"
	Info    Level = "Info"
	Warning Level = "Warning"
	Error   Level = "Error"
)

var levelPriority = map[Level]int{
	Debug:   1,
	Info:    2,
	Warning: 3,
	Error:   4,
}

/*
Formatter formats a log message into a string.
*/
type Formatter interface {
	Format(level Level, scope string, msg ...interface{}) string
}

/*
Logger publishes log messages under a fixed scope.
*/
type Logger interface {
	AddSink(level Level, formatter Formatter, w io.Writer)
	Debug(msg ...interface{})
	Info(msg ...interface{})
	Warning(msg ...interface{})
	Error(msg ...interface{})
}

/*
GetLogger returns a logger for a given scope. The root scope is the
empty string.
*/
func GetLogger(scope string) Logger {
	return &scopedLogger{scope}
}

type scopedLogger struct {
	scope string
}

func (l *scopedLogger) AddSink(level Level, formatter Formatter, w io.Writer) {
	addSink(level, l.scope, formatter, w)
}

func (l *scopedLogger) Debug(msg ...interface{})   { publish(Debug, l.scope, msg...) }
func (l *scopedLogger) Info(msg ...interface{})    { publish(Info, l.scope, msg...) }
func (l *scopedLogger) Warning(msg ...interface{}) { publish(Warning, l.scope, msg...) }
func (l *scopedLogger) Error(msg ...interface{})   { publish(Error, l.scope, msg...) }

type sink struct {
	io.Writer
	level     Level
	scope     string
	formatter Formatter
}

type sinkGroup [][]*sink

func (g sinkGroup) Len() int           { return len(g) }
func (g sinkGroup) Less(i, j int) bool { return g[i][0].scope > g[j][0].scope }
func (g sinkGroup) Swap(i, j int)      { g[i], g[j] = g[j], g[i] }

var (
	sinks     sinkGroup
	sinksLock sync.RWMutex

	fallback = func(s string) { _, _ = io.Discard.Write([]byte(s)) }
)

/*
ClearSinks removes all registered sinks. Mainly useful for tests.
*/
func ClearSinks() {
	sinksLock.Lock()
	defer sinksLock.Unlock()

	sinks = nil
}

func addSink(level Level, scope string, formatter Formatter, w io.Writer) {
	sinksLock.Lock()
	defer sinksLock.Unlock()

	for i, group := range sinks {
		if group[0].scope == scope {
			sinks[i] = append(group, &sink{w, level, scope, formatter})
			return
		}
	}

	sinks = append(sinks, []*sink{{w, level, scope, formatter}})
	sort.Sort(sinks)
}

func publish(level Level, scope string, msg ...interface{}) {
	sinksLock.RLock()
	defer sinksLock.RUnlock()

	for _, group := range sinks {
		if !strings.HasPrefix(scope, group[0].scope) {
			continue
		}

		handled := false

		for _, s := range group {
			if levelPriority[s.level] > levelPriority[level] {
				continue
			}

			handled = true
			fmsg := s.formatter.Format(level, scope, msg...)

			if _, err := s.Write([]byte(fmsg)); err != nil {
				fallback(fmt.Sprintf("could not write log message: %v (message: %v)", err, fmsg))
			}
		}

		if handled {
			return
		}
	}
}

/*
ConsoleFormatter formats a message with just its level prefixed.
*/
func ConsoleFormatter() Formatter {
	return consoleFormatter{}
}

type consoleFormatter struct{}

func (consoleFormatter) Format(level Level, scope string, msg ...interface{}) string {
	return fmt.Sprintln(fmt.Sprintf("%v:", level), fmt.Sprint(msg...))
}

/*
SimpleFormatter formats a message with a timestamp, scope and level.
*/
func SimpleFormatter() Formatter {
	return simpleFormatter{}
}

type simpleFormatter struct{}

func (simpleFormatter) Format(level Level, scope string, msg ...interface{}) string {
	ts := time.Now().UTC().Format(time.RFC3339Nano)

	if scope == "" {
		return fmt.Sprintln(ts, level, fmt.Sprint(msg...))
	}

	return fmt.Sprintln(ts, level, scope, fmt.Sprint(msg...))
}
