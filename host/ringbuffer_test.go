package host

import "testing"

func TestRingBuffer(t *testing.T) {
	t.Run("basic write and read", func(t *testing.T) {
		rb := NewRingBuffer(10)
		input := "12345"
		rb.Write([]byte(input))
		if rb.String() != input {
			t.Errorf("got %s, want %s", rb.String(), input)
		}
	})

	t.Run("overflow wraps around", func(t *testing.T) {
		rb := NewRingBuffer(5)
		rb.Write([]byte("123"))
		rb.Write([]byte("456"))

		expected := "23456"
		if rb.String() != expected {
			t.Errorf("got %s, want %s (internal data %v, pos %d)", rb.String(), expected, rb.data, rb.pos)
		}
	})

	t.Run("write larger than buffer keeps the tail", func(t *testing.T) {
		rb := NewRingBuffer(5)
		rb.Write([]byte("1234567890"))

		expected := "67890"
		if rb.String() != expected {
			t.Errorf("got %s, want %s", rb.String(), expected)
		}
	})
}
