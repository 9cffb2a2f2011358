package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files. ENV_PATH
// overrides the default paths when set. Missing files are fatal only in
// local mode; deployed environments configure through real env vars.
func LoadDotEnv(env string, defaultPaths ...string) error {
	paths := defaultPaths
	if os.Getenv("ENV_PATH") != "" {
		paths = []string{os.Getenv("ENV_PATH")}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if env == "local" || env == "" {
				slog.Error("Failed to load environment variables in local mode", "path", path, "error", err)
				return err
			}
			slog.Debug("Skipping .env ...", "path", path)
		}
	}

	return nil
}
