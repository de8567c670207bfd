package cache

import (
	"strings"
	"time"

	"moodjournal-api/internal/config"
)

// Namespace is the Redis key prefix for the mood journal.
const Namespace = "moodjournal"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const TTLFeed TTLClass = "feed"

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Feed time.Duration
}

// NewTTLSet converts the feed TTL (in seconds) into durations.
func NewTTLSet(cfg config.FeedConf) TTLSet {
	return TTLSet{
		Feed: durationOrDefault(cfg.TTL, 7*24*time.Hour),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLFeed:
		return t.Feed
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// RecentEntriesKey is the list holding the newest entries, head first.
func RecentEntriesKey() string {
	return formatKey("entries", "recent")
}

// RecentEntriesTTL returns the TTL for the recent entries list.
func RecentEntriesTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLFeed)
}
