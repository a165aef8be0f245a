package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"
)

// UploadEnvPrefix is the environment prefix for upload provider options,
// e.g. WRENCH_UPLOAD_ENDPOINT or a full WRENCH_UPLOAD JSON object.
const UploadEnvPrefix = "WRENCH_UPLOAD"

// ParseKV parses a key=value pair, attempting type inference for the value
func ParseKV(kvPair string) (string, any, error) {
	parts := strings.SplitN(kvPair, "=", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("invalid format, expected key=value: %s", kvPair)
	}

	key := strings.TrimSpace(parts[0])
	if key == "" {
		return "", nil, fmt.Errorf("empty key in key=value pair")
	}

	valueStr := strings.TrimSpace(parts[1])

	// Try to parse as integer first (to avoid "1" being parsed as boolean true)
	if intVal, err := strconv.Atoi(valueStr); err == nil {
		return key, intVal, nil
	}

	if floatVal, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return key, floatVal, nil
	}

	if valueStr == "true" || valueStr == "false" {
		boolVal, _ := strconv.ParseBool(valueStr)
		return key, boolVal, nil
	}

	return key, valueStr, nil
}

// ParseJSONOptions parses a JSON object string into an option map.
func ParseJSONOptions(jsonStr string) (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return result, nil
}

// ParseOptionsFile reads and parses a JSON option map from a file.
func ParseOptionsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid JSON in file: %w", err)
	}
	return result, nil
}

// ParseEnvOptions collects options from environment variables carrying the
// given prefix: a bare PREFIX variable holding a JSON object, plus
// individual PREFIX_* variables with type-inferred values.
func ParseEnvOptions(prefix string) map[string]any {
	options := make(map[string]any)

	if jsonStr := os.Getenv(prefix); jsonStr != "" {
		if parsed, err := ParseJSONOptions(jsonStr); err == nil {
			maps.Copy(options, parsed)
		}
	}

	envPrefix := prefix + "_"
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) == 2 {
				key := strings.ToLower(strings.TrimPrefix(parts[0], envPrefix))
				// Apply type inference to env var values
				_, value, _ := ParseKV(key + "=" + parts[1])
				options[key] = value
			}
		}
	}

	if len(options) == 0 {
		return nil
	}
	return options
}

// MergeOptions merges option maps; later sources override earlier ones.
func MergeOptions(sources ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, src := range sources {
		maps.Copy(result, src)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// BuildOptions assembles the final option map from all sources, in
// ascending precedence: environment, options file, JSON string, key=value
// pairs.
func BuildOptions(envPrefix, jsonStr string, kvPairs []string, filePath string) (map[string]any, error) {
	var sources []map[string]any

	if envOpts := ParseEnvOptions(envPrefix); envOpts != nil {
		sources = append(sources, envOpts)
	}

	if filePath != "" {
		fileOpts, err := ParseOptionsFile(filePath)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileOpts)
	}

	if jsonStr != "" {
		jsonOpts, err := ParseJSONOptions(jsonStr)
		if err != nil {
			return nil, err
		}
		sources = append(sources, jsonOpts)
	}

	if len(kvPairs) > 0 {
		kvOpts := make(map[string]any)
		for _, kv := range kvPairs {
			key, value, err := ParseKV(kv)
			if err != nil {
				return nil, err
			}
			kvOpts[key] = value
		}
		sources = append(sources, kvOpts)
	}

	return MergeOptions(sources...), nil
}
