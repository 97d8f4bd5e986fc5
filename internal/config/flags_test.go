package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    NetAddress
	}{
		{name: "localhost", input: "localhost:8080", expected: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ipv4", input: "127.0.0.1:9000", expected: NetAddress{Host: "127.0.0.1", Port: 9000}},
		{name: "any interface", input: ":8080", expected: NetAddress{Port: 8080}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "hostname", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:8081",
		"-request-timeout", "20s",
		"-local-kind", "fs", "-local-path", "/data/local",
		"-remote-kind", "http", "-remote-address", "http://peer:8081",
		"-remote-timeout", "7s",
		"-d", "file:sync.db",
		"-c", "/etc/vault.json",
		"-hash-key", "hk",
		"-iterations", "500",
		"-hint", "cat name",
		"-sync-interval", "30s",
		"-store-id", "peer",
		"-conflict-policy", "fail",
		"-workers", "3",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, Storage{Kind: "fs", Path: "/data/local"}, cfg.Local)
	assert.Equal(t, Storage{Kind: "http", Address: "http://peer:8081", RequestTimeout: 7 * time.Second}, cfg.Remote)
	assert.Equal(t, "file:sync.db", cfg.DB.DSN)
	assert.Equal(t, "/etc/vault.json", cfg.JSONFilePath)
	assert.Equal(t, App{HashKey: "hk", KDFIterations: 500, PasswordHint: "cat name"}, cfg.App)
	assert.Equal(t, Sync{Interval: 30 * time.Second, StoreID: "peer", ConflictPolicy: "fail"}, cfg.Sync)
	assert.Equal(t, 3, cfg.Workers.PoolSize)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "/tmp/c.json"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/c.json", cfg.JSONFilePath)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, StructuredConfig{}, *cfg)
}

func TestParseFlags_Errors(t *testing.T) {
	_, err := parseFlags([]string{"-a", "nonsense"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-unknown-flag"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-sync-interval", "forever"})
	assert.Error(t, err)
}
