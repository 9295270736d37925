package constants

import "time"

const (
	ServiceCachePrefix = "service"      // Catalog entry by service ID (CacheBuilder adds colon)
	ServiceCacheExpiry = 24 * time.Hour // Catalog changes are rare and invalidated on update
)
