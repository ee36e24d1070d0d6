package env

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"time"
)

var (
	ErrNotFound         = errors.New("environment variable with key not found")
	ErrConversionFailed = errors.New("failed to convert environment variable with key to value")
)

func errNotFound(key string) error {
	return fmt.Errorf("key: %s: %w", key, ErrNotFound)
}

func errConversionFailed(key string, typeName string, err error) error {
	return fmt.Errorf("key: %s type: %s: %w: %s", key, typeName, ErrConversionFailed, err)
}

func MustGetString(key string) string {
	if val, found := os.LookupEnv(key); found {
		return val
	}

	panic(errNotFound(key))
}

func MustGetInt(key string) int {
	envVal, found := os.LookupEnv(key)
	if !found {
		panic(errNotFound(key))
	}

	val, err := strconv.Atoi(envVal)
	if err != nil {
		panic(errConversionFailed(key, reflect.TypeOf(val).Name(), err))
	}

	return val
}

func MustGetURL(key string) *url.URL {
	val, found := os.LookupEnv(key)
	if !found {
		panic(errNotFound(key))
	}

	u, err := url.Parse(val)
	if err != nil {
		panic(errConversionFailed(key, reflect.TypeOf(u).Name(), err))
	}

	return u
}

func GetStringOrDefault(key string, defaultValue string) string {
	if val, found := os.LookupEnv(key); found && val != "" {
		return val
	}

	return defaultValue
}

func GetIntOrDefault(key string, defaultValue int) int {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultValue
	}

	val, err := strconv.Atoi(envVal)
	if err != nil {
		panic(errConversionFailed(key, reflect.TypeOf(val).Name(), err))
	}

	return val
}

// GetInt64OrDefault is GetIntOrDefault for values such as seeds that need the full 64 bits.
func GetInt64OrDefault(key string, defaultValue int64) int64 {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultValue
	}

	val, err := strconv.ParseInt(envVal, 10, 64)
	if err != nil {
		panic(errConversionFailed(key, reflect.TypeOf(val).Name(), err))
	}

	return val
}

func GetFloatOrDefault(key string, defaultValue float64) float64 {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultValue
	}

	val, err := strconv.ParseFloat(envVal, 64)
	if err != nil {
		panic(errConversionFailed(key, reflect.TypeOf(val).Name(), err))
	}

	return val
}

func GetBoolOrDefault(key string, defaultValue bool) bool {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultValue
	}

	val, err := strconv.ParseBool(envVal)
	if err != nil {
		panic(errConversionFailed(key, reflect.TypeOf(val).Name(), err))
	}

	return val
}

// GetDurationOrDefault parses values in time.ParseDuration format, e.g. "90s".
func GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultValue
	}

	val, err := time.ParseDuration(envVal)
	if err != nil {
		panic(errConversionFailed(key, reflect.TypeOf(val).Name(), err))
	}

	return val
}
