package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/aretw0/storypath/pkg/adapters/memory"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/aretw0/storypath/pkg/persistence/middleware"
	"github.com/aretw0/storypath/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, middleware.KeySize)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func sampleReport(id string) *domain.Report {
	return &domain.Report{
		ID:        id,
		Story:     "secret-story",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Outcome:   domain.OutcomeFound,
		Explored:  5,
		Complete:  2,
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	key := generateKey(t)
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(underlyingStore)

	ctx := context.Background()
	original := sampleReport("r1")

	if err := secureStore.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The underlying store only sees the envelope
	stored, err := underlyingStore.Load(ctx, "r1")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Story != "" {
		t.Fatalf("Expected story to be hidden, found: %v", stored.Story)
	}
	if stored.Sealed == "" {
		t.Fatal("Expected sealed payload in envelope")
	}

	loaded, err := secureStore.Load(ctx, "r1")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Story != "secret-story" || loaded.Explored != 5 {
		t.Errorf("Unexpected decrypted report: %+v", loaded)
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	store := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(memory.NewStore())
	ports.RunReportStoreContract(t, store)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)

	ctx := context.Background()
	if err := secureStoreOld.Save(ctx, sampleReport("rot")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, "rot")
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}

	// Saving again re-encrypts with the new key
	if err := secureStoreNew.Save(ctx, loaded); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}
	if _, err := secureStoreOld.Load(ctx, "rot"); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_PlainReportRejected(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	if err := underlyingStore.Save(ctx, sampleReport("plain")); err != nil {
		t.Fatal(err)
	}

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	if _, err := secureStore.Load(ctx, "plain"); err == nil {
		t.Error("Expected unsealed report to be rejected")
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}
