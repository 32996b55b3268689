package crypt_test

import (
	"errors"
	"testing"

	"github.com/shashiranjanraj/vendika/pkg/crypt"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	ct, err := crypt.Encrypt("hello world")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if ct == "hello world" {
		t.Fatal("ciphertext equals plaintext")
	}

	pt, err := crypt.Decrypt(ct)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if pt != "hello world" {
		t.Errorf("got %q", pt)
	}
}

func TestEncryptIsNondeterministic(t *testing.T) {
	a, err := crypt.Encrypt("same input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := crypt.Encrypt("same input")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected distinct ciphertexts for the same plaintext")
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	ct, err := crypt.Encrypt("secret")
	if err != nil {
		t.Fatal(err)
	}

	tampered := []byte(ct)
	tampered[len(tampered)-1] ^= 1
	if _, err := crypt.Decrypt(string(tampered)); !errors.Is(err, crypt.ErrDecrypt) {
		t.Errorf("expected ErrDecrypt, got %v", err)
	}
}

func TestEncryptJSONRoundTrip(t *testing.T) {
	in := map[string]string{"client_id": "abc", "client_secret": "xyz"}
	ct, err := crypt.EncryptJSON(in)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	var out map[string]string
	if err := crypt.DecryptJSON(ct, &out); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if out["client_secret"] != "xyz" {
		t.Errorf("got %v", out)
	}
}
