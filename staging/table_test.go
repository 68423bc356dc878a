package staging

import (
	"testing"
)

type countingDropper struct {
	drops *int
}

func (d countingDropper) Drop() { *d.drops++ }

func TestTable_Basic(t *testing.T) {
	table := NewTable()
	drops := 0

	h, err := table.Insert(countingDropper{&drops})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	if table.Len() != 1 {
		t.Fatalf("Expected Len() == 1, got %d", table.Len())
	}

	if _, ok := table.Remove(h); !ok {
		t.Fatal("Remove failed")
	}
	if drops != 1 {
		t.Fatalf("Expected 1 drop, got %d", drops)
	}
	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}

	if _, ok := table.Remove(h); ok {
		t.Fatal("second Remove should fail")
	}
	if _, ok := table.Remove(0); ok {
		t.Fatal("handle 0 should be invalid")
	}
}

func TestTable_HandleReuse(t *testing.T) {
	table := NewTable()
	drops := 0

	h1, _ := table.Insert(countingDropper{&drops})
	h2, _ := table.Insert(countingDropper{&drops})
	table.Remove(h1)

	h3, _ := table.Insert(countingDropper{&drops})
	if h3 != h1 {
		t.Fatalf("Expected freed handle %d to be reused, got %d", h1, h3)
	}
	if table.Len() != 2 {
		t.Fatalf("Expected Len() == 2, got %d", table.Len())
	}
	_ = h2
}

func TestTable_CloseDropsAll(t *testing.T) {
	table := NewTable()
	drops := 0
	for i := 0; i < 3; i++ {
		if _, err := table.Insert(countingDropper{&drops}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	if err := table.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if drops != 3 {
		t.Fatalf("Expected 3 drops, got %d", drops)
	}
	if _, err := table.Insert(countingDropper{&drops}); err != ErrClosed {
		t.Fatalf("Insert after Close = %v, want ErrClosed", err)
	}
	if err := table.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
