package secret

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPlain(t *testing.T) {
	t.Parallel()

	v, err := NewPlain("rotary2026")
	if err != nil {
		t.Fatalf("NewPlain err=%v", err)
	}
	if err := v.Verify("rotary2026"); err != nil {
		t.Fatalf("Verify(correct) err=%v", err)
	}
	for _, bad := range []string{"", "rotary", "rotary2026 ", "ROTARY2026"} {
		if err := v.Verify(bad); !errors.Is(err, ErrMismatch) {
			t.Fatalf("Verify(%q) err=%v want ErrMismatch", bad, err)
		}
	}
	if _, err := NewPlain(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestBcrypt(t *testing.T) {
	t.Parallel()

	h, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword err=%v", err)
	}
	v, err := NewBcrypt(string(h))
	if err != nil {
		t.Fatalf("NewBcrypt err=%v", err)
	}
	if err := v.Verify("s3cret"); err != nil {
		t.Fatalf("Verify(correct) err=%v", err)
	}
	if err := v.Verify("nope"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("Verify(wrong) err=%v", err)
	}
	if _, err := NewBcrypt("plaintext"); err == nil {
		t.Fatalf("expected error for non-bcrypt hash")
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	v, err := FromConfig("", "")
	if err != nil || v != nil {
		t.Fatalf("FromConfig(empty)=%v,%v want nil,nil", v, err)
	}
	v, err = FromConfig("abc", "")
	if err != nil || v.Verify("abc") != nil {
		t.Fatalf("FromConfig(plain) v=%v err=%v", v, err)
	}
}
