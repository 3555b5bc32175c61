package lease

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/govindrajkumar/easy-lease-sub000/app"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

type signatureRequest struct {
	LeaseID string `json:"leaseId"`
	Data    *struct {
		LeaseID string `json:"leaseId"`
	} `json:"data"`
}

func (r *signatureRequest) leaseID() string {
	if r.LeaseID != "" {
		return r.LeaseID
	}
	if r.Data != nil {
		return r.Data.LeaseID
	}
	return ""
}

// CreateSignature opens an embedded signature request on a lease for the caller
func (a *API) CreateSignature(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	req := &signatureRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && err != io.EOF {
		return model.InvalidArgument("request body must be JSON")
	}

	res, err := a.esign.CreateLeaseSignature(r.Context(), ctx.Caller, req.leaseID())
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(res)
}

// SignedAgreement redirects a party of the lease to a short lived url of the
// signed agreement
func (a *API) SignedAgreement(ctx *app.Context, w http.ResponseWriter, r *http.Request) error {
	signed, err := a.esign.SignedAgreementURL(r.Context(), ctx.Caller, ctx.Vars["id"])
	if err != nil {
		return err
	}
	w.Header().Del("Content-Type")
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, signed, http.StatusFound)
	return nil
}
