package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		MasterPassword string `json:"master_password"`
		PasswordHint   string `json:"password_hint"`
		KDFIterations  int    `json:"kdf_iterations"`
		HashKey        string `json:"hash_key"`
	} `json:"app,omitempty"`

	Local  jsonStorage `json:"local,omitempty"`
	Remote jsonStorage `json:"remote,omitempty"`

	DB struct {
		DSN string `json:"dsn"`
	} `json:"db,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Sync struct {
		Interval       Duration `json:"interval"`
		StoreID        string   `json:"store_id"`
		ConflictPolicy string   `json:"conflict_policy"`
	} `json:"sync,omitempty"`

	Workers struct {
		PoolSize int `json:"pool_size"`
	} `json:"workers,omitempty"`
}

type jsonStorage struct {
	Kind           string   `json:"kind"`
	Path           string   `json:"path"`
	Address        string   `json:"address"`
	RequestTimeout Duration `json:"request_timeout"`
}

func (s jsonStorage) storage() Storage {
	return Storage{
		Kind:           s.Kind,
		Path:           s.Path,
		Address:        s.Address,
		RequestTimeout: time.Duration(s.RequestTimeout),
	}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			MasterPassword: jsonCfg.App.MasterPassword,
			PasswordHint:   jsonCfg.App.PasswordHint,
			KDFIterations:  jsonCfg.App.KDFIterations,
			HashKey:        jsonCfg.App.HashKey,
		},
		Local:  jsonCfg.Local.storage(),
		Remote: jsonCfg.Remote.storage(),
		DB: DB{
			DSN: jsonCfg.DB.DSN,
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Sync: Sync{
			Interval:       time.Duration(jsonCfg.Sync.Interval),
			StoreID:        jsonCfg.Sync.StoreID,
			ConflictPolicy: jsonCfg.Sync.ConflictPolicy,
		},
		Workers: Workers{
			PoolSize: jsonCfg.Workers.PoolSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
