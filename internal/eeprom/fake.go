package eeprom

import "github.com/sweeney/sunrise-clock/internal/logic"

// FakeStore keeps the image in memory for test assertions.
type FakeStore struct {
	// Image is the raw stored bytes; nil means never written.
	Image []byte

	// Saved contains every configuration passed to Save.
	Saved []logic.Configuration

	// Initialized counts InitializeDefaults calls.
	Initialized int

	// SaveError, if set, will be returned by Save.
	SaveError error

	// LoadError, if set, will be returned by IsInitialized and Load.
	LoadError error
}

// NewFakeStore creates an empty (first boot) FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// NewFakeStoreWith creates a FakeStore already holding cfg.
func NewFakeStoreWith(cfg logic.Configuration) *FakeStore {
	return &FakeStore{Image: Encode(cfg)}
}

// IsInitialized reports whether the marker is present.
func (f *FakeStore) IsInitialized() (bool, error) {
	if f.LoadError != nil {
		return false, f.LoadError
	}
	return len(f.Image) > MarkerAddr && f.Image[MarkerAddr] == Marker, nil
}

// Load decodes the in-memory image.
func (f *FakeStore) Load() (logic.Configuration, error) {
	if f.LoadError != nil {
		return logic.Configuration{}, f.LoadError
	}
	if f.Image == nil {
		return logic.Configuration{}, ErrNotInitialized
	}
	return Decode(f.Image)
}

// Save records cfg and replaces the image.
func (f *FakeStore) Save(cfg logic.Configuration) error {
	if f.SaveError != nil {
		return f.SaveError
	}
	f.Saved = append(f.Saved, cfg)
	f.Image = Encode(cfg)
	return nil
}

// InitializeDefaults writes the default image.
func (f *FakeStore) InitializeDefaults() error {
	if f.SaveError != nil {
		return f.SaveError
	}
	f.Initialized++
	f.Image = Encode(logic.DefaultConfiguration())
	return nil
}
