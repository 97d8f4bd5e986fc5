package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a storage server address in format [host]:[port]
//	-request-timeout server request timeout (e.g. "30s")
//	-local-kind, -local-path, -local-address local replica storage
//	-remote-kind, -remote-path, -remote-address remote replica storage
//	-remote-timeout remote http storage request timeout
//	-d sync metadata SQLite DSN
//	-c/-config json file path with configs
//	-hash-key payload integrity key
//	-iterations PBKDF2 iteration count for new key generations
//	-hint password hint for a newly created vault
//	-sync-interval interval between sync runs (e.g. "1m")
//	-store-id remote replica identifier in the sync metadata
//	-conflict-policy "newest" or "fail"
//	-workers key derivation pool size
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("keychain-vault", flag.ContinueOnError)

	var serverAddress NetAddress
	var requestTimeout, remoteTimeout, syncInterval time.Duration
	var local, remote Storage
	var databaseDSN, jsonConfigPath, hashKey, hint string
	var storeID, conflictPolicy string
	var iterations, poolSize int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Server request timeout (e.g., 30s, 1m)")
	fs.StringVar(&local.Kind, "local-kind", "", "Local storage kind: fs, memory or http")
	fs.StringVar(&local.Path, "local-path", "", "Local fs storage root")
	fs.StringVar(&local.Address, "local-address", "", "Local http storage base URL")
	fs.StringVar(&remote.Kind, "remote-kind", "", "Remote storage kind: fs, memory or http")
	fs.StringVar(&remote.Path, "remote-path", "", "Remote fs storage root")
	fs.StringVar(&remote.Address, "remote-address", "", "Remote http storage base URL")
	fs.DurationVar(&remoteTimeout, "remote-timeout", 0, "Remote http storage request timeout")
	fs.StringVar(&databaseDSN, "d", "", "Sync metadata SQLite DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&hashKey, "hash-key", "", "Payload integrity hash key")
	fs.IntVar(&iterations, "iterations", 0, "PBKDF2 iteration count for new key generations")
	fs.StringVar(&hint, "hint", "", "Password hint for a newly created vault")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Interval between sync runs (e.g., 1m)")
	fs.StringVar(&storeID, "store-id", "", "Remote replica identifier")
	fs.StringVar(&conflictPolicy, "conflict-policy", "", "Conflict policy: newest or fail")
	fs.IntVar(&poolSize, "workers", 0, "Key derivation pool size")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	remote.RequestTimeout = remoteTimeout

	return &StructuredConfig{
		App: App{
			PasswordHint:  hint,
			KDFIterations: iterations,
			HashKey:       hashKey,
		},
		Local:  local,
		Remote: remote,
		DB: DB{
			DSN: databaseDSN,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			Interval:       syncInterval,
			StoreID:        storeID,
			ConflictPolicy: conflictPolicy,
		},
		Workers:      Workers{PoolSize: poolSize},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
