package config

import (
	"net/url"
	"strings"
)

// validateArchiveHost accepts an http(s) base URL or a file:// URL naming a
// local mirror directory.
func validateArchiveHost(field, raw string) error {
	u, err := url.Parse(raw)
	if err == nil && u.Scheme == "file" {
		if u.Path == "" || u.Path == "/" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", field, "file URL must include a path")
		}
		return nil
	}
	return validateBaseURL(field, raw)
}

// validateBaseURL checks that raw is an absolute http(s) URL.
func validateBaseURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigError{
			Type:    ConfigValidationFailed,
			Field:   field,
			Message: "invalid URL",
			Cause:   err,
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", field, "URL must use http or https")
	}
	if u.Host == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", field, "URL must include a host")
	}
	return nil
}

// ValidateTemplateName checks that name can be used as a single directory
// name beneath the archive root.
func ValidateTemplateName(name string) error {
	if name == "" {
		return nil
	}
	if strings.TrimSpace(name) != name {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "template", "template name cannot have surrounding spaces")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "template", "template name must be a single directory name")
	}
	if strings.HasPrefix(name, ".") {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "template", "template name cannot start with '.'")
	}
	return nil
}
