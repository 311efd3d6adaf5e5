package service

import "testing"

func TestCanView(t *testing.T) {
	cases := []struct {
		name        string
		requesterID string
		ownerID     string
		isPublic    bool
		want        bool
	}{
		{"owner private", "u1", "u1", false, true},
		{"owner public", "u1", "u1", true, true},
		{"other private", "u2", "u1", false, false},
		{"other public", "u2", "u1", true, true},
		{"anonymous private", "", "u1", false, false},
		{"anonymous public", "", "u1", true, true},
	}
	for _, tc := range cases {
		if got := CanView(tc.requesterID, tc.ownerID, tc.isPublic); got != tc.want {
			t.Errorf("%s: CanView = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanModify(t *testing.T) {
	if !CanModify("u1", "u1") {
		t.Fatalf("owner must be able to modify")
	}
	if CanModify("u2", "u1") {
		t.Fatalf("non-owner must not modify")
	}
	// La visibilidad pública nunca habilita escritura; CanModify no tiene
	// parámetro público a propósito.
	if CanModify("", "u1") {
		t.Fatalf("anonymous must not modify")
	}
	if CanModify("", "") {
		t.Fatalf("empty ids must not match")
	}
}
