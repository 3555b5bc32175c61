package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/govindrajkumar/easy-lease-sub000/api/common"
	"github.com/govindrajkumar/easy-lease-sub000/api/lease"
	"github.com/govindrajkumar/easy-lease-sub000/api/webhook"
	"github.com/govindrajkumar/easy-lease-sub000/app"
)

// API easylease api
type API struct {
	App    *app.App
	Config *common.Config
}

// New creates a new api
func New(a *app.App) (api *API, err error) {
	api = &API{App: a}
	api.Config, err = common.InitConfig()
	if err != nil {
		return nil, err
	}
	return api, nil
}

// Init initializes the api
func (a *API) Init(r *mux.Router) {
	/* ****************** LEASE ****************** */
	leaseAPI := lease.New(a.Config, a.App.ESignService)
	r.Handle("/leases/signature", a.handler(leaseAPI.CreateSignature, true)).Methods(http.MethodPost)
	r.Handle("/leases/{id}/agreement", a.handler(leaseAPI.SignedAgreement, true)).Methods(http.MethodGet)

	/* ****************** WEBHOOKS ****************** */
	webhookAPI := webhook.New(a.Config, a.App.ESignService)
	r.Handle("/webhooks/hellosign", a.handler(webhookAPI.HelloSign, false)).Methods(http.MethodPost)
}

// HealthCheck answers liveness probes
func (a *API) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"OK","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}
