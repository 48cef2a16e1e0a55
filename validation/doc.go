// Package validation validates configuration structs with struct tags.
//
// Failures are reported as *Error, whose Fields map a field name to its
// violation messages. That is the same shape an API returns for an HTTP 422
// response, so callers can render both the same way.
//
//	type Config struct {
//	    PrefixURL string `mapstructure:"prefix_url" validate:"required,url"`
//	}
//	if err := validation.Validate(cfg); err != nil {
//	    var verr *validation.Error
//	    errors.As(err, &verr) // verr.Fields["prefix_url"] == []string{"is required"}
//	}
package validation
