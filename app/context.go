package app

import (
	"github.com/govindrajkumar/easy-lease-sub000/model"
	"github.com/sirupsen/logrus"
)

// Context per request state
type Context struct {
	Logger        logrus.FieldLogger
	RemoteAddress string
	Caller        *model.Caller
	Vars          map[string]string
}

// WithLogger sets logger for context
func (ctx *Context) WithLogger(logger logrus.FieldLogger) *Context {
	ret := *ctx
	ret.Logger = logger
	return &ret
}

// WithRemoteAddress sets remote address for context
func (ctx *Context) WithRemoteAddress(address string) *Context {
	ret := *ctx
	ret.RemoteAddress = address
	return &ret
}

// WithCaller sets the authenticated caller for context
func (ctx *Context) WithCaller(caller *model.Caller) *Context {
	ret := *ctx
	ret.Caller = caller
	return &ret
}
