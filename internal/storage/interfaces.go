package storage

// StoreInterface is a durable string-keyed store. Crash-safe per key,
// not transactional across keys.
type StoreInterface interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
