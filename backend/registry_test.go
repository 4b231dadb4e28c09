package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/frameloop/gpucore"
)

type fakeBackend struct{ name string }

func (f fakeBackend) Name() string                              { return f.name }
func (f fakeBackend) CreateInstance() (gpucore.Instance, error) { return nil, nil }

// withRegistry runs fn against an empty registry and restores the previous
// one afterwards.
func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	})
}

func register(name string) {
	Register(name, func() Backend { return fakeBackend{name: name} })
}

func TestRegisterAndGet(t *testing.T) {
	withRegistry(t)
	register("native")

	if !IsRegistered("native") {
		t.Fatal("IsRegistered(native) = false")
	}
	b := Get("native")
	if b == nil || b.Name() != "native" {
		t.Fatalf("Get(native) = %v", b)
	}
	if Get("missing") != nil {
		t.Error("Get(missing) should be nil")
	}

	Unregister("native")
	if IsRegistered("native") {
		t.Error("native still registered after Unregister")
	}
}

func TestDefaultPriority(t *testing.T) {
	tests := []struct {
		name       string
		registered []string
		want       string
	}{
		{"rust wins", []string{BackendHeadless, BackendNative, BackendRust}, BackendRust},
		{"native over headless", []string{BackendHeadless, BackendNative}, BackendNative},
		{"headless alone", []string{BackendHeadless}, BackendHeadless},
		{"unlisted fallback", []string{"zeta", "alpha"}, "alpha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRegistry(t)
			for _, n := range tt.registered {
				register(n)
			}
			b := Default()
			if b == nil {
				t.Fatal("Default() = nil")
			}
			if b.Name() != tt.want {
				t.Errorf("Default().Name() = %q, want %q", b.Name(), tt.want)
			}
		})
	}
}

func TestStubFactorySkipped(t *testing.T) {
	withRegistry(t)
	Register(BackendRust, func() Backend { return nil })
	register(BackendNative)

	if got := Default().Name(); got != BackendNative {
		t.Errorf("Default() = %q, want native when rust is a stub", got)
	}
	if Get(BackendRust) != nil {
		t.Error("Get(rust) should be nil for a stub")
	}
	avail := Available()
	if len(avail) != 1 || avail[0] != BackendNative {
		t.Errorf("Available() = %v, want [native]", avail)
	}
}

func TestLookup(t *testing.T) {
	withRegistry(t)

	if _, err := Lookup(""); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Lookup(\"\") on empty registry error = %v", err)
	}

	register(BackendHeadless)
	b, err := Lookup("")
	if err != nil || b.Name() != BackendHeadless {
		t.Errorf("Lookup(\"\") = %v, %v", b, err)
	}
	if _, err := Lookup("vulkan"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Lookup(vulkan) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestMustDefaultPanics(t *testing.T) {
	withRegistry(t)
	defer func() {
		if recover() == nil {
			t.Error("MustDefault() did not panic on empty registry")
		}
	}()
	MustDefault()
}
