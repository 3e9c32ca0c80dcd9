package platform

import (
	"strconv"
	"testing"
)

const (
	typeDouble = "DOUBLE"
	typeNegate = "NEGATE"
)

func decodeDouble(data []byte) (int, error) {
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, NewInvalidArgument("not a number")
	}
	return n * 2, nil
}

func decodeNegate(data []byte) (int, error) {
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, NewInvalidArgument("not a number")
	}
	return -n, nil
}

func TestRouterDispatchesCorrectDecoder(t *testing.T) {
	router := NewRouter[int]("test").
		On(typeDouble, decodeDouble).
		On(typeNegate, decodeNegate)

	got, err := router.Dispatch(typeNegate, []byte("4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -4 {
		t.Errorf("expected -4, got %d", got)
	}
}

func TestRouterUnknownType(t *testing.T) {
	router := NewRouter[int]("test").On(typeDouble, decodeDouble)

	_, err := router.Dispatch("TRIPLE", []byte("1"))
	cmdErr, ok := AsCommandError(err)
	if !ok {
		t.Fatalf("expected CommandError, got %T", err)
	}
	if cmdErr.Code != StatusInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT, got %v", cmdErr.Code)
	}
}

func TestRouterPropagatesDecoderError(t *testing.T) {
	router := NewRouter[int]("test").On(typeDouble, decodeDouble)

	if _, err := router.Dispatch(typeDouble, []byte("x")); err == nil {
		t.Fatal("expected decoder error")
	}
}

func TestRouterTypes(t *testing.T) {
	router := NewRouter[int]("test").
		On(typeDouble, decodeDouble).
		On(typeNegate, decodeNegate)

	types := router.Types()
	if len(types) != 2 || types[0] != typeDouble || types[1] != typeNegate {
		t.Errorf("unexpected types: %v", types)
	}
}
