// Package config defines the metricsdump configuration structure.
//
// Values come from, in increasing priority: Default, a YAML file,
// METRICSDUMP_ environment variables and command line flags. Loading is
// done by internal/infra/confloader; this package only describes the
// shape, the defaults and the validation rules.
package config
