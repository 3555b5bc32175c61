package storage

import (
	"github.com/pkg/errors"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// New create the configured storage adapter
func New(conf *Config) (model.FileStorage, error) {
	var s model.FileStorage
	var err error
	switch conf.Type {
	case "local":
		s, err = NewLocalStorage(conf.Path, conf.BaseURL)
	case "s3", "wasabi":
		s, err = NewS3Storage(conf)
	default:
		return nil, errors.Errorf("unknown storage type %q", conf.Type)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create storage adapter")
	}
	return s, nil
}
