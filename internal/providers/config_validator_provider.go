package providers

import (
	"errors"
	"watchlist/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	if cv.conf.Auth.Enabled && cv.conf.Auth.Secret == "" {
		return errors.New("auth.secret is required when auth is enabled")
	}
	return nil
}
