package cache

import "strings"

const (
	GlobalKeyPrefix = "quizexam"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// SessionKey holds the JSON record of a quiz session.
func SessionKey(sessionID string) string {
	return GenerateCacheKey("quiz", "session", sessionID)
}

// AnswersKey holds the per-question answer hash of a quiz session.
func AnswersKey(sessionID string) string {
	return GenerateCacheKey("quiz", "answers", sessionID)
}

// ResultKey holds the scored result of a finished session.
func ResultKey(sessionID string) string {
	return GenerateCacheKey("quiz", "result", sessionID)
}
