// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads study-engine settings from a viper instance. Every
// key has a default, so an empty instance yields a working configuration.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/study-engine/pkg/types"
)

// EnvPrefix is prepended to environment variable names, with dots in keys
// replaced by underscores (STUDY_ENGINE_EXTRACTION_DEFAULT_CAP).
const EnvPrefix = "STUDY_ENGINE"

// DefaultStoreDir holds the deck database when store.dir is not set.
const DefaultStoreDir = ".study-engine"

var validate = validator.New()

// Default returns the configuration used when nothing is set.
func Default() types.Config {
	return types.Config{
		Extraction: types.DefaultExtractionConfig(),
		Reader:     types.DefaultReaderConfig(),
		Store: types.StoreConfig{
			Dir:        DefaultStoreDir,
			MaxResults: 20,
		},
		Log: types.LogConfig{
			Mode:  "development",
			Level: "warn",
		},
	}
}

// BindEnv makes v read STUDY_ENGINE_* variables for nested keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load registers defaults on v, decodes it, and validates the result.
// Invalid settings return an error wrapping types.ErrInvalidConfig.
func Load(v *viper.Viper) (*types.Config, error) {
	SetDefaults(v)

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", types.ErrInvalidConfig, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// SetDefaults registers every field of Default under its mapstructure key.
// Registering each leaf key lets AutomaticEnv override it.
func SetDefaults(v *viper.Viper) {
	setDefaults(v, "", reflect.ValueOf(Default()))
}

func setDefaults(v *viper.Viper, prefix string, rv reflect.Value) {
	rt := rv.Type()
	for i := range rt.NumField() {
		f := rt.Field(i)
		key := f.Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Struct && f.Type.PkgPath() != "time" {
			setDefaults(v, key, fv)
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}
