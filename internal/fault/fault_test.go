package fault

import (
	"testing"

	"github.com/Harshit978/ErrorHandler/internal/errdef"
)

func TestTypedFailures_ErrorIsDetail(t *testing.T) {
	cases := []error{
		&Invalid{Detail: "email"},
		&NotFound{Detail: "chat 42"},
		&Denied{Detail: "/admin"},
		&Unprocessable{Detail: "order"},
	}
	want := []string{"email", "chat 42", "/admin", "order"}
	for i, err := range cases {
		if err.Error() != want[i] {
			t.Fatalf("%T.Error() = %q, want %q", err, err.Error(), want[i])
		}
	}
}

func TestNew_CarriesDescriptor(t *testing.T) {
	desc := errdef.Descriptor{Code: "ERR-207", Template: "Upstream rejected: %s."}
	err := New(desc, "payment gateway")

	if err.Error() != "payment gateway" {
		t.Fatalf("Error() = %q", err.Error())
	}
	c, ok := err.(Coder)
	if !ok {
		t.Fatalf("New result does not implement Coder")
	}
	if got := c.Descriptor(); got != desc {
		t.Fatalf("Descriptor() = %+v, want %+v", got, desc)
	}
}
