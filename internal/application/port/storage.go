package port

// KeyValueStore is the device-local keyed string store backing
// persistence. Implementations may fail; the persistence adapter
// converts failures into reported StorageErrors and never lets them
// reach the engine as panics.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (value string, ok bool, err error)

	// Set stores a value under the key.
	Set(key, value string) error

	// Remove deletes the key. Removing a missing key is not an error.
	Remove(key string) error
}
