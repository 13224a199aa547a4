// Package configload reads the SchemeGuardian TOML configuration file and
// exposes the three 32-byte master keys it contains. It mirrors go-zero's
// own conf.MustLoad convention: a missing file or an invalid key is a fatal
// startup error, logged and followed by a non-zero process exit, rather
// than a recoverable error bubbled to a caller that has no sane recovery
// path at boot.
package configload

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/schemeguardian/secret"
)

// DefaultPath is the conventional location of the configuration file,
// relative to the process's working directory (spec §6.1).
const DefaultPath = "./SchemeGuardian/SchemeGuardianConf.toml"

// document mirrors the TOML schema in spec §6.1.
type document struct {
	Secrets struct {
		Default string `toml:"default"`
		Argon2  string `toml:"argon2"`
		AEAD    string `toml:"aead"`
	} `toml:"secrets"`
}

// Load reads and validates path, returning the three master keys. If
// argon2 or aead is absent from the file, it defaults to the default key,
// per spec §4.1.
func Load(path string) (*secret.Keys, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("configload: failed to read %s: %w", path, err)
	}

	var doc document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("configload: malformed toml in %s: %w", path, err)
	}

	if doc.Secrets.Default == "" {
		return nil, fmt.Errorf("configload: secrets.default is required")
	}

	argon2Key := doc.Secrets.Argon2
	if argon2Key == "" {
		argon2Key = doc.Secrets.Default
	}
	aeadKey := doc.Secrets.AEAD
	if aeadKey == "" {
		aeadKey = doc.Secrets.Default
	}

	keys, err := secret.New([]byte(doc.Secrets.Default), []byte(argon2Key), []byte(aeadKey))
	if err != nil {
		return nil, fmt.Errorf("configload: %w", err)
	}
	return keys, nil
}

// MustLoad reads and validates path exactly like Load, but logs and exits
// the process with a non-zero status on any failure — missing file,
// permission denied, malformed TOML, or a key whose length isn't exactly
// 32 bytes are all fatal startup errors per spec §4.1 and §7.
func MustLoad(path string) *secret.Keys {
	keys, err := Load(path)
	if err != nil {
		logx.Errorf("fatal config error: %v", err)
		os.Exit(1)
	}
	return keys
}
