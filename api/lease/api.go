package lease

import (
	"github.com/govindrajkumar/easy-lease-sub000/api/common"
	"github.com/govindrajkumar/easy-lease-sub000/app/esign"
)

// API lease endpoints
type API struct {
	config *common.Config
	esign  esign.Service
}

// New creates a new lease api
func New(conf *common.Config, esignService esign.Service) *API {
	return &API{
		config: conf,
		esign:  esignService,
	}
}
