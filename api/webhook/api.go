package webhook

import (
	"github.com/govindrajkumar/easy-lease-sub000/api/common"
	"github.com/govindrajkumar/easy-lease-sub000/app/esign"
)

// API provider callback endpoints
type API struct {
	config *common.Config
	esign  esign.Service
}

// New creates a new webhook api
func New(conf *common.Config, esignService esign.Service) *API {
	return &API{
		config: conf,
		esign:  esignService,
	}
}
