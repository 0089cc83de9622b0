// file: internal/config/validate.go
package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// getValidator returns the shared validator. Field names are reported by their
// koanf key so a failure reads like "sonarr.timeout_seconds".
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// FieldError describes one invalid configuration value.
type FieldError struct {
	Field  string // dotted koanf path, e.g. "sonarr.url"
	EnvVar string // environment variable that sets it, if any
	Rule   string
	Param  string
}

func (e FieldError) Error() string {
	var b strings.Builder
	b.WriteString(e.Field)
	if e.EnvVar != "" {
		fmt.Fprintf(&b, " (%s)", e.EnvVar)
	}
	b.WriteString(": ")
	switch e.Rule {
	case "required":
		b.WriteString("is required")
	case "http_url":
		b.WriteString("must be an http(s) URL")
	case "min":
		fmt.Fprintf(&b, "must be at least %s", e.Param)
	case "max":
		fmt.Fprintf(&b, "must be at most %s", e.Param)
	case "oneof":
		fmt.Fprintf(&b, "must be one of [%s]", e.Param)
	case "hostname_port":
		b.WriteString("must be a host:port address")
	default:
		fmt.Fprintf(&b, "failed %q validation", e.Rule)
	}
	return b.String()
}

// ValidationErrors collects every invalid field found in one pass.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns ValidationErrors naming each bad field.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "failed to validate configuration")
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Config.sonarr.url"; drop the root type name.
		path := fe.Namespace()
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[idx+1:]
		}
		out = append(out, FieldError{
			Field:  path,
			EnvVar: envVarFor(path),
			Rule:   fe.Tag(),
			Param:  fe.Param(),
		})
	}
	return out
}
