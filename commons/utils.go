// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
)

var envOnce sync.Once

// LoadEnvFile reads KEY=VALUE pairs from the file named by --env-file, once.
// Variables already present in the environment are overwritten.
func LoadEnvFile() {
	envOnce.Do(func() {
		args := os.Args[1:]
		for i, arg := range args {
			if arg == "--env-file" && i+1 < len(args) {
				if err := loadEnvFrom(args[i+1]); err != nil {
					fmt.Printf("Failed to load env file: %s\n", err)
				}
				return
			}
		}
	})
}

func loadEnvFrom(envFile string) error {
	fmt.Printf("Loading environment variables from file: %s\n", envFile)
	file, err := os.Open(envFile)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		os.Setenv(strings.TrimSpace(key), strings.Trim(strings.TrimSpace(val), `"`))
	}
	return scanner.Err()
}

// GetEnv returns the value of key, or the first fallback when the variable is empty.
func GetEnv(key string, fallback ...string) string {
	LoadEnvFile()
	if v := os.Getenv(key); v != "" {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

// GetEnvInt is GetEnv for integer settings; malformed values yield fallback.
func GetEnvInt(key string, fallback int) int {
	v := GetEnv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		Logger.Warnf("Ignoring malformed %s=%q: %v", key, v, err)
		return fallback
	}
	return i
}

// HasFlag reports whether the process was started with the given flag.
func HasFlag(flag string) bool {
	return slices.Contains(os.Args[1:], flag)
}

// FlagValue returns the argument following flag, if any.
func FlagValue(flag string) string {
	args := os.Args[1:]
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, flag+"="); ok {
			return v
		}
	}
	return ""
}
