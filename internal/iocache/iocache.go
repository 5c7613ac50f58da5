// Package iocache is for durable storage of collected records.
package iocache

import (
	"sync"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
)

// CacheStoreManager manages the record cache and archive stores.
type CacheStoreManager struct {
	sync.RWMutex
	records contract.CacheStore
	archive contract.ArchiveStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetRecordStore returns the store for cached aggregate records.
func (m *CacheStoreManager) GetRecordStore() contract.CacheStore {
	m.RLock()
	defer m.RUnlock()
	return m.records
}

// GetArchiveStore returns the store for batch run archiving.
func (m *CacheStoreManager) GetArchiveStore() contract.ArchiveStore {
	m.RLock()
	defer m.RUnlock()
	return m.archive
}
