package cursor

import "testing"

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		margin     int
		start      int
		delta      int
		n, height  int
		wantPos    int
		wantOffset int
	}{
		{"down no scroll", 1, 0, 1, 10, 5, 1, 0},
		{"down scrolls with margin", 1, 0, 4, 10, 5, 4, 1},
		{"up clamps to zero", 1, 2, -5, 10, 5, 0, 0},
		{"down clamps to end", 1, 8, 5, 10, 5, 9, 5},
		{"short list never scrolls", 2, 0, 3, 3, 5, 2, 0},
		{"zero margin", 0, 0, 5, 10, 5, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.margin)
			c.Jump(tt.start, tt.n, tt.height)
			c.Move(tt.delta, tt.n, tt.height)
			if c.Pos() != tt.wantPos {
				t.Errorf("pos = %d, want %d", c.Pos(), tt.wantPos)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestJump_EmptyListNoop(t *testing.T) {
	c := New(1)
	c.Jump(3, 0, 5)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("got pos=%d offset=%d, want 0/0", c.Pos(), c.Offset())
	}
}

func TestClamp_AfterShrink(t *testing.T) {
	c := New(0)
	c.Jump(9, 10, 3)
	c.Clamp(4, 3)
	if c.Pos() != 3 {
		t.Errorf("pos = %d, want 3", c.Pos())
	}
	if c.Offset() != 1 {
		t.Errorf("offset = %d, want 1", c.Offset())
	}

	c.Clamp(0, 3)
	if c.Pos() != 0 || c.Offset() != 0 {
		t.Errorf("empty clamp: pos=%d offset=%d", c.Pos(), c.Offset())
	}
}

func TestVisible(t *testing.T) {
	c := New(0)
	c.Jump(7, 10, 4)
	start, end := c.Visible(10, 4)
	if start != 4 || end != 8 {
		t.Errorf("Visible = [%d,%d), want [4,8)", start, end)
	}
	if s, e := c.Visible(0, 4); s != 0 || e != 0 {
		t.Errorf("empty Visible = [%d,%d)", s, e)
	}
}

func TestHandleKey(t *testing.T) {
	c := New(0)
	keys := []struct {
		key  string
		want int
	}{
		{"j", 1}, {"down", 2}, {"k", 1}, {"G", 4}, {"g", 0}, {"end", 4}, {"home", 0},
	}
	for _, k := range keys {
		if !c.HandleKey(k.key, 5, 3) {
			t.Fatalf("key %q not handled", k.key)
		}
		if c.Pos() != k.want {
			t.Errorf("after %q pos = %d, want %d", k.key, c.Pos(), k.want)
		}
	}
	if c.HandleKey("x", 5, 3) {
		t.Error("unexpected key handled")
	}
}
