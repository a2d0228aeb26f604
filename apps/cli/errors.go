package main

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/peertutor/peertutor/core"
	"github.com/peertutor/peertutor/services/rest"
)

// errmsg turns an error into the user-facing notice. Validation
// errors come back per field; backend errors come back verbatim.
func errmsg(err error) string {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		parts := make([]string, 0, len(origErr))
		for _, vErr := range origErr {
			parts = append(parts, fmt.Sprintf("%s: %s", vErr.Field(), vErr.Translate(core.Translator)))
		}
		return strings.Join(parts, "; ")
	case *core.ValidationError:
		if origErr.Fields != nil {
			parts := make([]string, 0, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				parts = append(parts, fmt.Sprintf("%s: %s", fErr.Field, fErr.Error))
			}
			return strings.Join(parts, "; ")
		}
		return origErr.Error()
	case *rest.APIError:
		return origErr.Message()
	}
	return err.Error()
}
