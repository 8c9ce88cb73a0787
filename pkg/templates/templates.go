// Package templates provides embedded configuration and plan templates.
package templates

import _ "embed"

// PlanYAML contains the default record plan. It exercises the fields of
// ADIF 3.1.x and is copied to the config directory on first run.
//
//go:embed plan.yaml
var PlanYAML string

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string
