package cache

import "strings"

const (
	GlobalKeyPrefix = "mindspark"
)

// Services and object types used in cache keys.
const (
	ServiceQuiz   = "quiz"
	ServiceTheme  = "theme"
	ObjectDetail  = "detail"
	ObjectActive  = "active"
	IdentifierAll = "current"
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

// QuizKey is the key of a stored quiz.
func QuizKey(quizID string) string {
	return GenerateCacheKey(ServiceQuiz, ObjectDetail, quizID)
}

// ActiveThemeKey is the key of the currently active theme.
func ActiveThemeKey() string {
	return GenerateCacheKey(ServiceTheme, ObjectActive, IdentifierAll)
}
