package redis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClientConnects(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(context.Background(), fmt.Sprintf("redis://%s", srv.Addr()))
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "probe", "1", 0).Err(); err != nil {
		t.Fatalf("set failed: %v", err)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url")
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
	if !strings.Contains(err.Error(), "parse redis URL") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewClientUnreachableServer(t *testing.T) {
	srv := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", srv.Addr())
	srv.Close()

	_, err := NewClient(context.Background(), url)
	if err == nil {
		t.Fatal("expected ping error when server is down")
	}
}
