package utils

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("ch4ngeMoi!")
	if err != nil {
		t.Fatal(err)
	}
	if string(hashed) == "ch4ngeMoi!" {
		t.Fatal("password must not be stored in clear")
	}
	if err := ComparePassword(string(hashed), "ch4ngeMoi!"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := ComparePassword(string(hashed), "autreMotDePasse"); err == nil {
		t.Fatal("wrong password accepted")
	}
}
