package confkit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

const maxWalkDepth = 8

var dotenvOnce sync.Once

// LoadDotenvOnce loads a .env file into the process environment. The first
// call wins; later calls are no-ops.
//
//   - NO_DOTENV=1 disables loading.
//   - ENV_FILE names an explicit file.
//   - otherwise .env files are loaded from the working directory upwards
//     until the project root (go.mod or .git) is reached.
//
// Existing variables are kept unless DOTENV_OVERLOAD=1.
func LoadDotenvOnce() {
	dotenvOnce.Do(loadDotenv)
}

func loadDotenv() {
	if os.Getenv("NO_DOTENV") == "1" {
		return
	}
	load := godotenv.Load
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		load = godotenv.Overload
	}

	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = load(envFile)
		return
	}

	wd, err := os.Getwd()
	if err != nil {
		_ = load(".env")
		return
	}
	walkUp(wd, func(dir string) bool {
		_ = load(filepath.Join(dir, ".env"))
		return isProjectRoot(dir)
	})
}

// ProjectRoot walks upwards from the working directory to the first directory
// holding go.mod or .git, falling back to the working directory itself.
func ProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return ".", fmt.Errorf("getwd: %w", err)
	}
	root := wd
	walkUp(wd, func(dir string) bool {
		if isProjectRoot(dir) {
			root = dir
			return true
		}
		return false
	})
	return root, nil
}

// ProjectPath joins the project root with rel.
func ProjectPath(rel string) (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// MustProjectPath returns ProjectPath(rel) and panics on failure.
func MustProjectPath(rel string) string {
	p, err := ProjectPath(rel)
	if err != nil {
		panic(err)
	}
	return p
}

func walkUp(dir string, visit func(string) bool) {
	for i := 0; i < maxWalkDepth; i++ {
		if visit(dir) {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func isProjectRoot(dir string) bool {
	return fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git"))
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
