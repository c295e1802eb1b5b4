package ulog

import "testing"

func TestRegistryWildcardDefault(t *testing.T) {
	r := newLevelRegistry(8, LevelInfo)

	// No entries yet: every tag falls back to the construction default,
	// and the first miss lazily creates the wildcard entry.
	if got := r.get("wifi"); got != LevelInfo {
		t.Fatalf("get(wifi) = %v, want %v", got, LevelInfo)
	}
	if len(r.entries) != 1 || r.entries[0].tag != WildcardTag {
		t.Fatalf("expected lazily created wildcard entry, got %+v", r.entries)
	}

	// Changing the wildcard changes every unset tag immediately.
	r.set(WildcardTag, LevelVerbose)
	for _, tag := range []string{"wifi", "heap", "anything"} {
		if got := r.get(tag); got != LevelVerbose {
			t.Errorf("get(%s) = %v, want %v", tag, got, LevelVerbose)
		}
	}
}

func TestRegistrySetGet(t *testing.T) {
	r := newLevelRegistry(8, LevelInfo)

	r.set("wifi", LevelDebug)
	if got := r.get("wifi"); got != LevelDebug {
		t.Fatalf("get(wifi) = %v, want %v", got, LevelDebug)
	}

	// Re-setting the same tag updates in place, never duplicates.
	for i := 0; i < 5; i++ {
		r.set("wifi", LevelDebug)
	}
	r.set("wifi", LevelError)
	count := 0
	for _, e := range r.entries {
		if e.tag == "wifi" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one wifi entry, got %d", count)
	}
	if got := r.get("wifi"); got != LevelError {
		t.Fatalf("get(wifi) after update = %v, want %v", got, LevelError)
	}

	// Explicit entries shadow the wildcard; other tags still follow it.
	r.set(WildcardTag, LevelWarn)
	if got := r.get("wifi"); got != LevelError {
		t.Errorf("explicit entry overridden by wildcard: %v", got)
	}
	if got := r.get("heap"); got != LevelWarn {
		t.Errorf("get(heap) = %v, want %v", got, LevelWarn)
	}
}

func TestRegistryCapacityOverflow(t *testing.T) {
	r := newLevelRegistry(3, LevelInfo)
	r.set(WildcardTag, LevelWarn)
	r.set("a", LevelDebug)
	r.set("b", LevelVerbose)

	// Full. New tags are silently ignored and evaluate as the wildcard.
	r.set("c", LevelError)
	if got := r.get("c"); got != LevelWarn {
		t.Fatalf("overflow tag should read the wildcard default, got %v", got)
	}
	if len(r.entries) != 3 {
		t.Fatalf("capacity exceeded: %d entries", len(r.entries))
	}

	// Existing tags remain updatable while full.
	r.set("a", LevelNone)
	if got := r.get("a"); got != LevelNone {
		t.Fatalf("in-place update while full failed, got %v", got)
	}
}

func TestRegistryWildcardAlwaysFindsRoom(t *testing.T) {
	r := newLevelRegistry(2, LevelInfo)
	r.set("a", LevelDebug)
	r.set("b", LevelVerbose)

	r.set(WildcardTag, LevelError)
	if got := r.get("unset"); got != LevelError {
		t.Fatalf("wildcard set on a full registry must still win, got %v", got)
	}
}
