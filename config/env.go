package config

import (
	"os"
	"strings"
)

// Environment is the runtime environment the service was started in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

var environments = map[string]Environment{
	"development": Development,
	"dev":         Development,
	"test":        Test,
	"ci":          CI,
	"production":  Production,
	"prod":        Production,
}

func (e Environment) String() string {
	return string(e)
}

// GetEnvironment reads ENV. CI runners are detected from CI=true or
// GITHUB_ACTIONS=true and win over ENV. Unknown values mean development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return CI
	}
	if env, ok := environments[strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))]; ok {
		return env
	}
	return Development
}
