package user

import "testing"

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("password stored in the clear")
	}
	if !CheckPassword(hash, "secret123") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "secret124") {
		t.Fatalf("wrong password accepted")
	}
}
