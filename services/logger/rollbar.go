package logsvc

import (
	"fmt"
	"io"
	"strconv"

	glog "github.com/labstack/gommon/log"
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/user"
)

// RollbarLogger reports events to Rollbar (when a token is configured) and prints them locally.
type RollbarLogger struct {
	local *glog.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger prints to out with the given prefix. Debug events are printed only in debug mode.
func NewRollbarLogger(out io.Writer, prefix string, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "" && !conf.TestMode)

	local := glog.New(prefix)
	local.SetOutput(out)
	local.SetHeader("${time_rfc3339} ${level} ${prefix}")
	if conf.Debug {
		local.SetLevel(glog.DEBUG)
	} else {
		local.SetLevel(glog.INFO)
	}
	return &RollbarLogger{local: local}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, user.User
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var usrSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			if !usrSet { // only set one User
				rollbar.SetPerson(strconv.Itoa(usr.ID), usr.Username, "")
				usrSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

func (l RollbarLogger) format(msg string, args []interface{}) string {
	for _, arg := range args {
		switch a := arg.(type) {
		case user.User:
			msg += " user=" + a.Username
		case error:
			msg += fmt.Sprintf(" err=%q", a.Error())
		default:
			msg += fmt.Sprintf(" %+v", a)
		}
	}
	return msg
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.local.Debug(l.format(msg, args))
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.local.Info(l.format(msg, args))
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.local.Warn(l.format(msg, args))
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.local.Error(l.format(msg, args))
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.local.Fatal(l.format(msg, args))
}
