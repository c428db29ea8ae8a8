package state

import (
	"sync"
	"testing"
)

func TestMemStoreGetSet(t *testing.T) {
	s := NewMemStore()

	if _, ok := s.Get("e1", "hp"); ok {
		t.Error("Get on empty store reported ok")
	}

	s.Set("e1", "hp", 75)
	v, ok := s.Get("e1", "hp")
	if !ok || v != 75 {
		t.Errorf("Get = %v, %v, want 75, true", v, ok)
	}

	s.Set("e1", "hp", 60)
	if v, _ := s.Get("e1", "hp"); v != 60 {
		t.Errorf("after overwrite = %v, want 60", v)
	}

	// Same node id under a different entity is a distinct key.
	if _, ok := s.Get("e2", "hp"); ok {
		t.Error("e2 sees e1's value")
	}
}

func TestMemStoreResetEntity(t *testing.T) {
	s := NewMemStore()
	s.Set("e1", "hp", 75)
	s.Set("e1", "ammo", 12)
	s.Set("e2", "hp", 40)

	s.ResetEntity("e1")

	if _, ok := s.Get("e1", "hp"); ok {
		t.Error("e1 hp survived reset")
	}
	if _, ok := s.Get("e1", "ammo"); ok {
		t.Error("e1 ammo survived reset")
	}
	if v, ok := s.Get("e2", "hp"); !ok || v != 40 {
		t.Errorf("e2 hp = %v, %v, want 40, true", v, ok)
	}
}

func TestMemStoreResetAll(t *testing.T) {
	s := NewMemStore()
	s.Set("e1", "hp", 75)
	s.Set("e2", "hp", 40)

	s.ResetAll()

	if entries := s.Snapshot(); len(entries) != 0 {
		t.Errorf("snapshot after ResetAll has %d entries", len(entries))
	}
}

func TestMemStoreSnapshotRestore(t *testing.T) {
	s := NewMemStore()
	s.Set("e1", "hp", 75)
	s.Set("e2", "score", 1200)

	entries := s.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("snapshot has %d entries, want 2", len(entries))
	}

	// Snapshot is a copy: mutating the store afterwards does not change it.
	s.Set("e1", "hp", 10)

	fresh := NewMemStore()
	fresh.Restore(entries)
	if v, _ := fresh.Get("e1", "hp"); v != 75 {
		t.Errorf("restored hp = %v, want 75", v)
	}
	if v, _ := fresh.Get("e2", "score"); v != 1200 {
		t.Errorf("restored score = %v, want 1200", v)
	}

	// Restore replaces, not merges.
	fresh.Restore(nil)
	if entries := fresh.Snapshot(); len(entries) != 0 {
		t.Errorf("restore of nil kept %d entries", len(entries))
	}
}

func TestMemStoreConcurrentAccess(t *testing.T) {
	s := NewMemStore()
	var wg sync.WaitGroup

	// Entity-disjoint writers and readers, as a multithreaded host
	// partitioning evaluation by entity would produce.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			entity := string(rune('a' + n))
			for j := 0; j < 100; j++ {
				s.Set(entity, "hp", float64(j))
				s.Get(entity, "hp")
			}
		}(i)
	}
	wg.Wait()

	if entries := s.Snapshot(); len(entries) != 8 {
		t.Errorf("snapshot has %d entries, want 8", len(entries))
	}
}
