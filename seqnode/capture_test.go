package seqnode

import (
	"math/big"
	"testing"
)

func TestSaveRecordsIntoEnv(t *testing.T) {
	child := NewLeaf([]string{"a", "b", "c"})
	save := NewSave(child, 1)
	env := Env{}
	got, err := save.Item(big.NewInt(1), env)
	if err != nil {
		t.Fatalf("Item(1): %v", err)
	}
	if got != "b" {
		t.Errorf("Item(1) = %q, want %q", got, "b")
	}
	if env[1] != "b" {
		t.Errorf("env[1] = %q, want %q", env[1], "b")
	}
}

func TestSaveWithNilEnvStillReturnsValue(t *testing.T) {
	save := NewSave(NewLeaf([]string{"x"}), 1)
	got, err := save.Item(big.NewInt(0), nil)
	if err != nil {
		t.Fatalf("Item(0): %v", err)
	}
	if got != "x" {
		t.Errorf("Item(0) = %q, want %q", got, "x")
	}
}

func TestReadReturnsBoundValue(t *testing.T) {
	env := Env{1: "a"}
	read := NewRead(1)
	got, err := read.Item(big.NewInt(0), env)
	if err != nil {
		t.Fatalf("Item(0): %v", err)
	}
	if got != "a" {
		t.Errorf("Item(0) = %q, want %q", got, "a")
	}
}

func TestReadReturnsFailSentinelWhenAbsent(t *testing.T) {
	read := NewRead(1)
	got, err := read.Item(big.NewInt(0), Env{})
	if err != nil {
		t.Fatalf("Item(0): %v", err)
	}
	if got != "fail" {
		t.Errorf("Item(0) = %q, want %q", got, "fail")
	}

	got, err = read.Item(big.NewInt(0), nil)
	if err != nil {
		t.Fatalf("Item(0) with nil env: %v", err)
	}
	if got != "fail" {
		t.Errorf("Item(0) with nil env = %q, want %q", got, "fail")
	}
}

func TestReadLengthIsOne(t *testing.T) {
	read := NewRead(1)
	if read.Len().Cmp(bigOne) != 0 {
		t.Fatalf("Len() = %s, want 1", read.Len())
	}
	if _, err := read.Item(big.NewInt(1), Env{}); err == nil {
		t.Error("Item(1) on a length-1 Read: expected IndexError")
	}
}

func TestSaveReadRoundTrip(t *testing.T) {
	// A `([abc])-\1`-shaped tree: a Save(group 1) followed by a literal
	// "-" then a Read(1), concatenated via
	// Combinatorics so every index is a single (group, group) pair.
	group := NewSave(NewLeaf([]string{"a", "b", "c"}), 1)
	dash := NewLeaf([]string{"-"})
	back := NewRead(1)
	tree := NewCombinatorics([]Node{group, dash, back})

	if tree.Len().Cmp(big.NewInt(3)) != 0 {
		t.Fatalf("Len() = %s, want 3", tree.Len())
	}
	want := []string{"a-a", "b-b", "c-c"}
	for i, w := range want {
		env := Env{}
		got, err := tree.Item(big.NewInt(int64(i)), env)
		if err != nil {
			t.Fatalf("Item(%d): %v", i, err)
		}
		if got != w {
			t.Errorf("Item(%d) = %q, want %q", i, got, w)
		}
	}
}
