package kv

import "fmt"

// Open returns the store for a backend name: "file", "memory" or "redis".
func Open(backend, dataDir, redisURL string) (Store, error) {
	switch backend {
	case "", "file":
		s := NewFileStore(dataDir)
		if err := s.Init(); err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		s, err := ConnectRedis(redisURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", backend)
	}
}
