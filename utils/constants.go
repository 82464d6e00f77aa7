package utils

import (
	"time"
)

// Language constants
const (
	// DefaultLanguage is used for public endpoints when no lang parameter is provided
	DefaultLanguage = "uz"
)

// Cache key constants. All keys are namespaced under the configured redis
// prefix by the cache helpers.
const (
	// AdCacheKeyFormat expands to ads:placement:<code>:lang:<lang>:cat:<id|all>
	AdCacheKeyFormat = "ads:placement:%s:lang:%s:cat:%s"

	// NewsListCacheKeyFormat expands to news:list:lang:<l>:page:<p>:size:<s>:category:<c|all>:tag:<t|all>
	NewsListCacheKeyFormat = "news:list:lang:%s:page:%d:size:%d:category:%s:tag:%s"

	// NewsDetailCacheKeyFormat expands to news:detail:slug:<slug>:lang:<lang>
	NewsDetailCacheKeyFormat = "news:detail:slug:%s:lang:%s"

	// CategoriesCacheKeyFormat expands to categories:lang:<lang>
	CategoriesCacheKeyFormat = "categories:lang:%s"

	// TagsCacheKey holds the public tag code list
	TagsCacheKey = "tags"

	// RateLimitKeyPrefix prefixes all sliding-window counter keys
	RateLimitKeyPrefix = "rate_limit:"

	// TokenBlacklistKeyPrefix prefixes revoked token JTI keys
	TokenBlacklistKeyPrefix = "token_blacklist:"
)

// Cache TTL defaults. Ad selection TTL is deliberately short: the weighted
// rotation happens once per TTL window per cache key, so a long TTL would
// freeze the rotation while no TTL would make caching pointless.
const (
	AdCacheTTL         = 30 * time.Second
	NewsListCacheTTL   = 60 * time.Second
	NewsDetailCacheTTL = 120 * time.Second
	CategoriesCacheTTL = 5 * time.Minute
	TagsCacheTTL       = 5 * time.Minute
)

// Rate limiting defaults
const (
	// RateLimitTTLMargin is added to the window when setting key expiry so
	// abandoned keys self-expire slightly after the window closes
	RateLimitTTLMargin = 10 * time.Second

	LoginRateLimit        = 5
	LoginRateLimitWindow  = time.Minute
	PublicRateLimit       = 60
	PublicRateLimitWindow = time.Minute
	AdsRateLimit          = 120
	AdsRateLimitWindow    = time.Minute
)

// Pagination constants
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// HTTP constants
const (
	// CORSMaxAge controls how long browsers may cache preflight responses,
	// in seconds
	CORSMaxAge = 86400
)

// ContextKey is the type for request-scoped context values
type ContextKey string

// Request-scoped context keys set by the HTTP layer
const (
	RequestIDKey ContextKey = "request_id"
	UserAgentKey ContextKey = "user_agent"
	IPAddressKey ContextKey = "ip_address"
	EndpointKey  ContextKey = "endpoint"
)

// Token constants
const (
	// AccessTokenTTL is the default time-to-live for access tokens
	AccessTokenTTL = 24 * time.Hour
)
