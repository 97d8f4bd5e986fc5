// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Variable names come from
// the `env` tags on [StructuredConfig], prefixed by the `envPrefix` of each
// section (APP_, LOCAL_, REMOTE_, ...). Unset and empty variables leave the
// zero value in place so that later sources in the builder can supply it.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("parse env config: %w", err)
	}
	return nil
}
