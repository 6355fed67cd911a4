package hash

import "testing"

func TestHasher_HashVerify(t *testing.T) {
	h, err := New("pepper")
	if err != nil {
		t.Fatal(err)
	}

	digest, err := h.Hash("Aa1aaaaa")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "Aa1aaaaa" {
		t.Fatal("digest must not equal plaintext")
	}
	if !h.Verify("Aa1aaaaa", digest) {
		t.Fatal("expected match")
	}
	if h.Verify("wrong", digest) {
		t.Fatal("expected mismatch")
	}
}

func TestHasher_SaltedPerCall(t *testing.T) {
	h, _ := New("pepper")
	d1, _ := h.Hash("pw")
	d2, _ := h.Hash("pw")
	if d1 == d2 {
		t.Fatal("expected distinct digests for the same plaintext")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h, _ := New("pepper")
	if h.Verify("pw", "not-an-argon2id-digest") {
		t.Fatal("malformed digest must not verify")
	}
}

func TestHasher_PepperMatters(t *testing.T) {
	h1, _ := New("pepper-a")
	h2, _ := New("pepper-b")
	digest, _ := h1.Hash("pw")
	if h2.Verify("pw", digest) {
		t.Fatal("digest must be bound to the pepper")
	}
}
