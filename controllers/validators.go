package controllers

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stellar/go/keypair"
)

// RegisterValidators adds the stellar_address and stellar_seed tags to gin's
// binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	if err := v.RegisterValidation("stellar_address", isStellarAddress); err != nil {
		return err
	}
	return v.RegisterValidation("stellar_seed", isStellarSeed)
}

func isStellarAddress(fl validator.FieldLevel) bool {
	_, err := keypair.ParseAddress(fl.Field().String())
	return err == nil
}

func isStellarSeed(fl validator.FieldLevel) bool {
	_, err := keypair.ParseFull(fl.Field().String())
	return err == nil
}
