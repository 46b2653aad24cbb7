package passwd

import "testing"

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h == "hunter22" {
		t.Fatal("hash equals plaintext")
	}
	if !Verify(h, "hunter22") {
		t.Error("Verify rejected the right password")
	}
	if Verify(h, "wrong") {
		t.Error("Verify accepted the wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}
