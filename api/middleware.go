package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/api/common"
	"github.com/govindrajkumar/easy-lease-sub000/app"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

func (a *API) handler(f common.HandlerFuncWithCTX, checkAuth bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxContentSize*1024*1024)
		beginTime := time.Now()
		ctx := a.App.NewContext().WithRemoteAddress(a.IPAddressForRequest(r))
		ctx = ctx.WithLogger(ctx.Logger.WithField("request_id", uuid.NewString()))
		ctx.Vars = mux.Vars(r)

		w = &common.StatusCodeRecorder{
			ResponseWriter: w,
		}

		defer func() {
			statusCode := w.(*common.StatusCodeRecorder).StatusCode
			if statusCode == 0 {
				statusCode = 200
			}
			duration := time.Since(beginTime)

			logger := ctx.Logger.WithFields(logrus.Fields{
				"duration":    duration,
				"status_code": statusCode,
				"remote":      ctx.RemoteAddress,
			})
			logger.Info(r.Method + " " + r.URL.RequestURI())
		}()

		defer func() {
			if localRecover := recover(); localRecover != nil {
				ctx.Logger.Error(fmt.Errorf("recovered from panic\n %v: %s", localRecover, debug.Stack()))
				writeError(ctx, w, model.Internal("server failed to process request"))
			}
		}()

		w.Header().Set("Content-Type", "application/json")

		if checkAuth {
			caller, err := validateUser(a.Config, r, a.App)
			if err != nil {
				ctx.Logger.WithError(err).Warn("authentication failed")
				writeError(ctx, w, model.Unauthenticated("User must be authenticated"))
				return
			}
			ctx = ctx.WithCaller(caller)
			ctx = ctx.WithLogger(ctx.Logger.WithField("user_id", caller.UserID))
		}

		if err := f(ctx, w, r); err != nil {
			writeError(ctx, w, err)
		}
	}
}

func writeError(ctx *app.Context, w http.ResponseWriter, err error) {
	var (
		cerr *model.CallableError
		verr *app.ValidationError
		uerr *app.UserError
	)
	switch {
	case errors.As(err, &cerr):
		if cerr.Code == model.CodeInternal {
			ctx.Logger.Error(err)
		}
		w.WriteHeader(cerr.HTTPStatus())
		json.NewEncoder(w).Encode(&common.ErrorResponse{Error: cerr})
	case errors.As(err, &verr):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(verr)
	case errors.As(err, &uerr):
		w.WriteHeader(uerr.StatusCode)
		json.NewEncoder(w).Encode(uerr)
	default:
		ctx.Logger.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(&common.ErrorResponse{Error: model.Internal(err.Error())})
	}
}

// IPAddressForRequest determines IP address for request
func (a *API) IPAddressForRequest(r *http.Request) string {
	addr := r.RemoteAddr
	if a.Config.ProxyCount > 0 {
		h := r.Header.Get("X-Forwarded-For")
		if h != "" {
			clients := strings.Split(h, ",")
			if a.Config.ProxyCount > len(clients) {
				addr = clients[0]
			} else {
				addr = clients[len(clients)-a.Config.ProxyCount]
			}
		}
	}
	return strings.Split(strings.TrimSpace(addr), ":")[0]
}
