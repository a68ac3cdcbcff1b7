// Package config loads process configuration for the alloykit server from
// environment variables.
//
// Every variable is prefixed with ALLOYKIT_. Unset or unparsable values fall
// back to their defaults, and the assembled configuration is validated
// before it is returned.
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	addr := cfg.Server.Address()
//
// Project lint settings (rules, required attributes, ignore patterns) are
// not configured here; they live in a .alloykit.yaml file loaded by
// pkg/linter.
package config
