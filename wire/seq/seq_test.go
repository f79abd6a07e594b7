package seq

import "testing"

func TestAppendAndAt(t *testing.T) {
	s := New[int]()
	for i := 0; i < 5; i++ {
		if err := s.Append(i); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}
	if got, want := s.Len(), 5; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	for i := 0; i < 5; i++ {
		if got := s.At(i); got != i {
			t.Fatalf("At(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestInsertAt(t *testing.T) {
	s := New[string]()
	for _, v := range []string{"a", "b", "d"} {
		s.Append(v)
	}
	if err := s.Insert(2, "c"); err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "d"}
	for i, w := range want {
		if got := s.At(i); got != w {
			t.Fatalf("At(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestDeleteAt(t *testing.T) {
	s := New[int]()
	for i := 0; i < 4; i++ {
		s.Append(i)
	}
	s.DeleteAt(1)
	want := []int{0, 2, 3}
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(want))
	}
	for i, w := range want {
		if got := s.At(i); got != w {
			t.Fatalf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestPop(t *testing.T) {
	s := New[int]()
	s.Append(1)
	s.Append(2)
	s.Append(3)
	if got := s.Pop(); got != 3 {
		t.Fatalf("Pop() = %d, want 3", got)
	}
	if got := s.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestDeleteLastMatch(t *testing.T) {
	s := New[int]()
	for _, v := range []int{5, 7, 5, 9, 5} {
		s.Append(v)
	}
	ok := s.DeleteLastMatch(func(v int) bool { return v == 5 })
	if !ok {
		t.Fatal("DeleteLastMatch: want found")
	}
	want := []int{5, 7, 5, 9}
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(want))
	}
	for i, w := range want {
		if got := s.At(i); got != w {
			t.Fatalf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestDeleteLastMatchNotFound(t *testing.T) {
	s := New[int]()
	s.Append(1)
	if s.DeleteLastMatch(func(v int) bool { return v == 99 }) {
		t.Fatal("DeleteLastMatch: want not found")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestEachReverseOrder(t *testing.T) {
	s := New[int]()
	for i := 0; i < 4; i++ {
		s.Append(i)
	}
	var got []int
	s.EachReverse(func(v int) { got = append(got, v) })
	want := []int{3, 2, 1, 0}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("EachReverse()[%d] = %d, want %d", i, got[i], w)
		}
	}
}

func TestEachReverseSelfRemoval(t *testing.T) {
	// A listener removing itself during its own callback (the
	// supported case, matching BatchDrive/notification reentrancy)
	// must not disturb any other call in the sweep.
	s := New[int]()
	for i := 0; i < 5; i++ {
		s.Append(i)
	}
	var called []int
	s.EachReverse(func(v int) {
		called = append(called, v)
		if v == 2 {
			s.DeleteFirstMatch(func(x int) bool { return x == 2 })
		}
	})
	want := []int{4, 3, 2, 1, 0}
	if len(called) != len(want) {
		t.Fatalf("called = %v, want %v", called, want)
	}
	for i, w := range want {
		if called[i] != w {
			t.Fatalf("called[%d] = %d, want %d", i, called[i], w)
		}
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 after self-removal", s.Len())
	}
}

func TestMaxLen(t *testing.T) {
	s := New[int](WithMaxLen(2))
	if err := s.Append(1); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(2); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(3); err != ErrFull {
		t.Fatalf("Append: got %v, want ErrFull", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (failed append must not record)", s.Len())
	}
}
