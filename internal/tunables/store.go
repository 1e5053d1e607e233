package tunables

import (
	"encoding/json"
	"log"
)

// StorageKey is the key the full parameter record is persisted under.
const StorageKey = "controls"

// KV is the persistence surface the parameter store needs.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Load reads the persisted record and merges it over Defaults. Missing,
// unreadable, or malformed records yield Defaults; unknown keys are ignored.
func Load(kv KV) Params {
	raw, ok, err := kv.Get(StorageKey)
	if err != nil {
		log.Printf("tunables: read %q: %v", StorageKey, err)
		return Defaults()
	}
	if !ok {
		return Defaults()
	}

	p := Defaults()
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("tunables: parse %q: %v", StorageKey, err)
		return Defaults()
	}
	return p
}

// Store serializes the full record, replacing any previous value.
func Store(kv KV, p Params) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return kv.Set(StorageKey, string(data))
}
