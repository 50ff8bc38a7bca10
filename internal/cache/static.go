package cache

var staticCache = NewCache[string, string]()

// GetStaticHash returns the ETag recorded for a static URL path.
func GetStaticHash(path string) (string, bool) {
	return staticCache.Get(path)
}

func SetStaticHash(path, hash string) {
	staticCache.Set(path, hash)
}

func ClearStaticHashes() {
	staticCache.Clear()
}
