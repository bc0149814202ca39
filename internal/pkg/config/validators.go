// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Validator checks one aspect of the configuration
type Validator interface {
	Validate(cfg *Config) error
}

// RequiredValidator checks fields tagged required:"true"
type RequiredValidator struct{}

// Validate reports the first missing required field by its environment key
func (v *RequiredValidator) Validate(cfg *Config) error {
	return validateRequiredFields(cfg)
}

// RangeValidator checks numeric and enumerated settings
type RangeValidator struct{}

// Validate performs range validation
func (v *RangeValidator) Validate(cfg *Config) error {
	port, err := strconv.Atoi(cfg.Database.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PG_PORT must be a valid port number, got %q", cfg.Database.Port)
	}

	if cfg.Database.UpsertChunkSize <= 0 {
		return fmt.Errorf("DB_UPSERT_CHUNK_SIZE must be positive")
	}

	if cfg.API.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT cannot be negative")
	}

	switch cfg.Secrets.Provider {
	case SecretsProviderEnv:
	case SecretsProviderAWS:
		if cfg.Secrets.SecretName == "" {
			return fmt.Errorf("%w: AWS_SECRET_NAME", ErrMissingRequiredConfig)
		}
	default:
		return fmt.Errorf("unknown SECRETS_PROVIDER %q", cfg.Secrets.Provider)
	}

	if cfg.Redis.Addr != "" && cfg.Redis.LockTTL <= 0 {
		return fmt.Errorf("SYNC_LOCK_TTL must be positive")
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	// Check for placeholder values
	if strings.Contains(cfg.Database.Password, "MISSING_") {
		return fmt.Errorf("%w: PG_PASSWORD", ErrMissingRequiredConfig)
	}

	if strings.Contains(cfg.API.Key, "MISSING_") {
		return fmt.Errorf("%w: API_KEY", ErrMissingRequiredConfig)
	}

	if cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}

	if !strings.HasPrefix(cfg.API.URL, "https://") {
		return fmt.Errorf("API_URL must use https in production")
	}

	return nil
}

// validateRequiredFields uses reflection to check required struct tags
func validateRequiredFields(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	return validateStruct(v, "")
}

func validateStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		fieldName := fieldType.Name

		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		if required := fieldType.Tag.Get("required"); required == "true" {
			if isZeroValue(field) {
				if envKey := fieldType.Tag.Get("env"); envKey != "" {
					return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, envKey)
				}
				return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, fieldName)
			}
		}

		// Recursively check nested structs
		if field.Kind() == reflect.Struct {
			if err := validateStruct(field, fieldName); err != nil {
				return err
			}
		}
	}

	return nil
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == "" || strings.HasPrefix(v.String(), "MISSING_")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
