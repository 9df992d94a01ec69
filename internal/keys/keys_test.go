package keys

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestGenerateSignVerify tests the basic sign/verify round trip.
func TestGenerateSignVerify(t *testing.T) {
	t.Parallel()

	pair, err := Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	message := []byte("persona ownership proof")
	signature := pair.Sign(message)

	if !Verify(pair.Public, message, signature) {
		t.Error("expected signature to verify")
	}
	if Verify(pair.Public, []byte("tampered"), signature) {
		t.Error("expected tampered message to fail verification")
	}
}

// TestVerifyRejectsBadKey tests that malformed public keys never verify.
func TestVerifyRejectsBadKey(t *testing.T) {
	t.Parallel()

	pair, err := Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	signature := pair.Sign([]byte("msg"))

	if Verify([]byte("short"), []byte("msg"), signature) {
		t.Error("expected truncated public key to fail verification")
	}
	if Verify(nil, []byte("msg"), signature) {
		t.Error("expected nil public key to fail verification")
	}
}

// TestFromSeed tests keypair reconstruction from a seed.
func TestFromSeed(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		pair, err := Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rebuilt, err := FromSeed(pair.Private.Seed())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(rebuilt.Public, pair.Public) {
			t.Error("expected rebuilt public key to match original")
		}
	})

	t.Run("wrong seed size", func(t *testing.T) {
		t.Parallel()

		if _, err := FromSeed([]byte("too short")); !errors.Is(err, ErrInvalidSeedSize) {
			t.Errorf("expected ErrInvalidSeedSize, got %v", err)
		}
	})
}

// TestSaveLoadSeed tests seed persistence and its failure modes.
func TestSaveLoadSeed(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		pair, err := Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		path := filepath.Join(t.TempDir(), "keys", "persona.seed")
		if err := pair.SaveSeed(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %04o", perm)
		}

		loaded, err := LoadSeed(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(loaded.Public, pair.Public) {
			t.Error("expected loaded public key to match original")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope.seed")
		if _, err := LoadSeed(path); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("garbage file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "garbage.seed")
		if err := os.WriteFile(path, []byte("not pem at all"), 0600); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := LoadSeed(path); !errors.Is(err, ErrInvalidKeyFormat) {
			t.Errorf("expected ErrInvalidKeyFormat, got %v", err)
		}
	})
}

// TestEncodeDecodePublic tests the PEM round trip for public keys.
func TestEncodeDecodePublic(t *testing.T) {
	t.Parallel()

	pair, err := Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	encoded := EncodePublic(pair.Public)
	decoded, err := DecodePublic(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(decoded, pair.Public) {
		t.Error("expected decoded public key to match original")
	}

	if _, err := DecodePublic("not a pem block"); !errors.Is(err, ErrInvalidKeyFormat) {
		t.Errorf("expected ErrInvalidKeyFormat, got %v", err)
	}
}
