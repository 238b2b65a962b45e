package db

import (
	"os"
	"testing"
)

func TestConnectMongo_BadURI(t *testing.T) {
	old := os.Getenv("MONGO_URI")
	defer os.Setenv("MONGO_URI", old)

	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestDatabaseName(t *testing.T) {
	old := os.Getenv("MONGO_DB")
	defer os.Setenv("MONGO_DB", old)

	os.Unsetenv("MONGO_DB")
	if got := DatabaseName(); got != "drivego" {
		t.Errorf("expected default database name, got %q", got)
	}

	os.Setenv("MONGO_DB", "drivego_test")
	if got := DatabaseName(); got != "drivego_test" {
		t.Errorf("expected drivego_test, got %q", got)
	}
}
