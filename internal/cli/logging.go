package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"moodjournal-api/internal/config"
	"moodjournal-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	report := "not persisted"
	if cfg.Journal.PersistReport {
		report = cfg.Journal.ReportPath
	}
	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Journal: %s", cfg.Journal.Path),
		fmt.Sprintf("Weekly report: %s (trailing %d days)", report, cfg.Journal.TrailingDays),
		fmt.Sprintf("Classifier mode: %s", cfg.Mode()),
		fmt.Sprintf("Prompt: %s", promptSource(cfg)),
		fmt.Sprintf("Postgres: %s", presence(cfg.Postgres.DSN != "")),
		fmt.Sprintf("Redis: %s", presence(strings.TrimSpace(cfg.Redis.Host) != "")),
		fmt.Sprintf("Feed (maxLen/ttl): %d / %ds", cfg.Feed.MaxLen, cfg.Feed.TTL),
		sectionLine("LLM config", cfg.LLM),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func promptSource(cfg *config.Config) string {
	switch {
	case strings.TrimSpace(cfg.Classifier.PromptFile) != "":
		return cfg.PromptFilePath()
	case strings.TrimSpace(cfg.Classifier.PromptPrefix) != "":
		return "inline prefix"
	default:
		return "built-in"
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
