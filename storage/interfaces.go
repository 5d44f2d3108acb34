package storage

import "fuel-explorer/models"

// KeyValueStore is a synchronous string key-value store. Get reports false
// when the key is absent.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
}

// VehicleWriter is the interface for exporting normalized vehicles.
type VehicleWriter interface {
	WriteVehicles(vehicles []*models.Vehicle) error
	Close() error
}

// Store is a KeyValueStore that owns a resource needing release.
type Store interface {
	KeyValueStore
	Close() error
}

// DriverMemory selects the process-local MemoryStore.
const DriverMemory = "memory"

// Open returns the Store for driver. The memory driver ignores dsn.
func Open(driver, dsn string) (Store, error) {
	if driver == DriverMemory {
		return NewMemoryStore(), nil
	}
	s, err := OpenSQLStore(driver, dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}
