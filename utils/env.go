package utils

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var loadOnce sync.Once

// LoadEnv loads environment variables from a .env file in the project root
// if present. Existing environment variables are not overwritten.
func LoadEnv() {
	loadOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}

		// Walk up at most 3 levels looking for .env.
		candidate := ""
		dir := cwd
		for i := 0; i < 3; i++ {
			path := filepath.Join(dir, ".env")
			if st, err := os.Stat(path); err == nil && !st.IsDir() {
				candidate = path
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
		if candidate == "" {
			return
		}

		f, err := os.Open(candidate)
		if err != nil {
			return
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			line = strings.TrimPrefix(line, "export ")
			kv := strings.SplitN(line, "=", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.TrimSpace(kv[0])
			val := strings.Trim(strings.TrimSpace(kv[1]), `"'`)
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	})
}
