// Copyright 2016, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Severity is an RFC 5424 severity level
type Severity int

// RFC 5424 severity levels
const (
	EMERGENCY Severity = iota
	ALERT
	CRITICAL
	ERROR
	WARNING
	NOTICE
	INFO
	DEBUG
)

var severityNames = [...]string{
	"Emergency",
	"Alert",
	"Critical",
	"Error",
	"Warning",
	"Notice",
	"Informational",
	"Debug",
}

func (s Severity) String() string {
	if s < EMERGENCY || s > DEBUG {
		return "Unknown"
	}
	return severityNames[s]
}

// LogContext is the set of identifying information attached to every log message
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for callers with no session of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return "street-view-green-view"
}

// SessionID returns a session ID, generating one on first use
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		var err error
		if c.sessionID, err = PsuUUID(); err != nil {
			c.sessionID = "unknown-session"
		}
	}
	return c.sessionID
}

// LogRootDir returns the log root directory
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

var logWriter io.Writer = os.Stderr

// doLog writes one RFC 5424-flavored line for the given context and severity
func doLog(ctx LogContext, severity Severity, message string) {
	appName := ctx.AppName()
	if appName == "" {
		appName = "-"
	}
	sessionID := ctx.SessionID()
	if sessionID == "" {
		sessionID = "-"
	}
	priority := 8 + int(severity)
	fmt.Fprintf(logWriter, "<%d>1 %s %s %s - - %s %s\n",
		priority, time.Now().UTC().Format(time.RFC3339), appName, sessionID, severity.String(), message)
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	doLog(ctx, INFO, message)
}

// LogAlert logs a message needing operator attention
func LogAlert(ctx LogContext, message string) {
	doLog(ctx, ALERT, message)
}

// LogAuditInput contains the fields of an audit log message
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit logs an auditable event such as a request boundary or job start
func LogAudit(ctx LogContext, input LogAuditInput) {
	doLog(ctx, input.Severity, fmt.Sprintf("[AUDIT] Actor: %s, Action: %s, Actee: %s, Message: %s",
		input.Actor, input.Action, input.Actee, input.Message))
}

// Error is a loggable error carrying both an operator-facing and a user-facing message
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
	hasLogged  bool
}

// Error returns the user-facing message, falling back to the log message
func (e Error) Error() string {
	if e.SimpleMsg != "" {
		return e.SimpleMsg
	}
	return e.LogMsg
}

// Log writes the full detail of the error once and returns it for propagation
func (e *Error) Log(ctx LogContext, prefix string) error {
	if !e.hasLogged {
		message := e.LogMsg
		if prefix != "" {
			message = prefix + message
		}
		if e.URL != "" {
			message += fmt.Sprintf(", URL: %s", e.URL)
		}
		if e.HTTPStatus != 0 {
			message += fmt.Sprintf(", HTTP Status: %d", e.HTTPStatus)
		}
		if e.Response != "" {
			message += fmt.Sprintf(", Response: %s", e.Response)
		}
		doLog(ctx, ERROR, message)
		e.hasLogged = true
	}
	return *e
}

// LogSimpleErr logs a message and its underlying error, returning a propagatable Error
func LogSimpleErr(ctx LogContext, message string, err error) error {
	logMsg := message
	if err != nil {
		logMsg = fmt.Sprintf("%s %v", message, err)
	}
	simpleErr := Error{LogMsg: logMsg, SimpleMsg: message}
	return simpleErr.Log(ctx, "")
}

// HTTPErr is an error with an associated HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

func (e HTTPErr) Error() string {
	return e.Message
}

// HTTPError logs and writes an error response for the given request
func HTTPError(request *http.Request, writer http.ResponseWriter, ctx LogContext, message string, status int) {
	actee := ""
	if request != nil && request.URL != nil {
		actee = request.URL.String()
	}
	LogAudit(ctx, LogAuditInput{
		Actor:    ctx.AppName(),
		Action:   fmt.Sprintf("HTTP %d response", status),
		Actee:    actee,
		Message:  message,
		Severity: ERROR,
	})
	http.Error(writer, message, status)
}
