package kv

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ncobase/taskmate/config"
)

// Driver opens a Store for one backend type. Following the design pattern of
// database/sql, drivers register themselves from init() and are looked up by the
// name configured in session.driver.
type Driver interface {
	// Name returns the driver identifier (e.g., "file", "sqlite", "redis")
	Name() string

	// Open connects to the backend using the session store configuration.
	Open(ctx context.Context, cfg *config.Session) (Store, error)
}

var (
	drivers   = make(map[string]Driver)
	driversMu sync.RWMutex
)

// Register makes a driver available by the provided name.
//
//	func init() {
//	    kv.Register(&driver{})
//	}
//
// If Register is called twice with the same name or if driver is nil, it panics.
func Register(driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		panic("kv: Register driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("kv: Register driver name is empty")
	}

	if _, exists := drivers[name]; exists {
		panic(fmt.Sprintf("kv: Register called twice for driver %s", name))
	}

	drivers[name] = driver
}

// GetDriver returns the driver registered under name.
func GetDriver(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()

	driver, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"kv: driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/taskmate/data/kv/%s\"\n\n"+
				"Available drivers: %v",
			name, name, listDriversLocked(),
		)
	}
	return driver, nil
}

// Drivers lists the registered driver names in sorted order.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	return listDriversLocked()
}

func listDriversLocked() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens a store with the driver named in cfg.Driver.
func Open(ctx context.Context, cfg *config.Session) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("kv: session config is nil")
	}
	driver, err := GetDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	store, err := driver.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("kv: open %s: %w", cfg.Driver, err)
	}
	return store, nil
}
