package repositories

// StorageProvider holds the two storage scopes a profile uses.
type StorageProvider struct {
	// Session holds credentials and expires with the browser session.
	Session KeyValueStore
	// Local holds preferences and cached rates and outlives sessions.
	Local KeyValueStore
}
