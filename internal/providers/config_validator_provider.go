package providers

import (
	"fmt"

	"cookingapp/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	v.StopOnError = false
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.String())
	}
	return nil
}
