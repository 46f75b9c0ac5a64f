package pipeline

import (
	"github.com/custodia-labs/medrfq/internal/core/ports/driven"
	"github.com/custodia-labs/medrfq/internal/medicines"
	"github.com/custodia-labs/medrfq/internal/pipeline/authorize"
	"github.com/custodia-labs/medrfq/internal/pipeline/classify"
	"github.com/custodia-labs/medrfq/internal/pipeline/dedupe"
)

// RegisterDefaults registers all built-in stages with the registry.
// The authorize stage is only registered when a validator is given.
func RegisterDefaults(r *Registry, validator *medicines.Validator) {
	r.Register(dedupe.Name, buildDedupe)
	r.Register(classify.Name, buildClassify)
	if validator != nil {
		r.Register(authorize.Name, authorizeBuilder(validator))
	}
}

func buildDedupe(_ map[string]any) (driven.Stage, error) {
	return dedupe.New(), nil
}

func buildClassify(cfg map[string]any) (driven.Stage, error) {
	return classify.New(classify.WithOverwrite(getBoolFromConfig(cfg, "overwrite"))), nil
}

// authorizeBuilder returns a builder bound to validator.
// Supported config keys:
//   - min_confidence (float): minimum match confidence (default: validator threshold)
//   - drop_rejected (bool): remove unauthorized items (default: false)
func authorizeBuilder(validator *medicines.Validator) BuilderFunc {
	return func(cfg map[string]any) (driven.Stage, error) {
		var opts []authorize.Option
		if minConf := getFloatFromConfig(cfg, "min_confidence"); minConf > 0 {
			opts = append(opts, authorize.WithMinConfidence(minConf))
		}
		if getBoolFromConfig(cfg, "drop_rejected") {
			opts = append(opts, authorize.WithDropRejected())
		}
		return authorize.New(validator, opts...), nil
	}
}

// getFloatFromConfig safely extracts a float from generic config map.
// Handles float64, int and int64 types that may come from TOML/JSON parsing.
func getFloatFromConfig(cfg map[string]any, key string) float64 {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func getBoolFromConfig(cfg map[string]any, key string) bool {
	v, _ := cfg[key].(bool)
	return v
}
