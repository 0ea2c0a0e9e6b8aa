package props

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/autocliper/autoclip/internal/errs"
	"github.com/autocliper/autoclip/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate is the independent structural check over one descriptor, usable
// both at build time and before handing descriptors to the renderer. It
// fails fast on the first violation. Crop-mode exclusivity is enforced in
// both directions: SPLIT requires crop data, CENTER forbids it.
func Validate(d types.RenderDescriptor) error {
	if d.Words == nil {
		return errs.MismatchedInput("descriptor words track is missing").
			WithDetail("id", d.ID)
	}
	if d.CropMode == types.CropCenter && d.CropData != nil {
		return errs.MismatchedInput("crop data present for CENTER layout").
			WithDetail("id", d.ID)
	}

	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return errs.MismatchedInput("descriptor failed structural validation").
				WithDetail("id", d.ID).
				WithDetail("field", f.Namespace()).
				WithDetail("rule", f.Tag()).
				WithDetail("value", f.Value())
		}
		return errs.MismatchedInput("descriptor failed structural validation").
			WithDetail("id", d.ID).
			WithCause(err)
	}
	return nil
}

// ValidateAll checks every descriptor in the list and additionally rejects
// an empty list: a run without a single descriptor did not succeed.
func ValidateAll(list []types.RenderDescriptor) error {
	if len(list) == 0 {
		return errs.MismatchedInput("no render descriptors produced")
	}
	for i, d := range list {
		if err := Validate(d); err != nil {
			var e *errs.Error
			if errors.As(err, &e) {
				return e.WithDetail("index", i)
			}
			return err
		}
	}
	return nil
}
