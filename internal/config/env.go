package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// envVarPattern matches ${VAR_NAME} patterns in registry values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw registry value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// ExpandEnv replaces ${VAR} and $VAR in s using env. Unknown variables
// expand to the empty string.
func ExpandEnv(s string, env map[string]string) string {
	return os.Expand(s, func(key string) string {
		return env[key]
	})
}

// captureEnvironment snapshots the process environment merged with .env and
// .env.local from the project root. Variables already set in the process
// take precedence, matching godotenv.Load.
func captureEnvironment(projectRoot string) (map[string]string, error) {
	env := make(map[string]string)

	envFiles := []string{
		filepath.Join(projectRoot, ".env.local"),
		filepath.Join(projectRoot, ".env"),
	}
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		values, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(envFile), err)
		}
		for k, v := range values {
			// .env.local is read first and wins over .env
			if _, exists := env[k]; !exists {
				env[k] = v
			}
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		env[k] = v
	}

	return env, nil
}
