// Package auth implements Issue, Authenticate, Authorize, Revoke, and
// Reissue: the orchestration layer that ties the token engine, the
// secret store, and the GC registry together into the outward-facing API
// an embedding application calls (spec §4.5–§4.8).
package auth

import (
	"context"
	"fmt"

	"github.com/suleymanmyradov/schemeguardian/gc"
	"github.com/suleymanmyradov/schemeguardian/secret"
	"github.com/suleymanmyradov/schemeguardian/store"
	"github.com/suleymanmyradov/schemeguardian/tai64"
	"github.com/suleymanmyradov/schemeguardian/token"
)

// Engine orchestrates the token, store, and gc packages behind the five
// exported operations. The zero value is not usable; construct with New.
type Engine struct {
	keys     *secret.Keys
	store    store.SecretStore
	registry *gc.Registry
}

// New constructs an Engine over keys, s, and registry. registry may be nil
// if the embedding application doesn't want automatic lease reclamation —
// Issue then simply skips registering an expiry.
func New(keys *secret.Keys, s store.SecretStore, registry *gc.Registry) *Engine {
	return &Engine{keys: keys, store: s, registry: registry}
}

func storeKey(flavor token.Flavor, identity string) []byte {
	return []byte(flavor.String() + ":" + identity)
}

// Issue builds and persists a fresh token for identity, rendering it in
// flavor. If lease is a DateExpiryTAI lease and the engine has a
// registry, the record is also scheduled for automatic reclamation.
func (e *Engine) Issue(ctx context.Context, flavor token.Flavor, identity string, role token.Role, lease token.Lease, acl token.AccessControlList, attrs []byte, target string) (string, Status, error) {
	wire, contents, err := token.Issue(flavor, identity, role, lease, acl, attrs, e.keys.AEAD(), e.keys.Default(), target)
	if err != nil {
		return "", NotExecuted, err
	}

	key, res, err := e.persist(ctx, flavor, contents)
	if err != nil {
		return "", NotExecuted, err
	}

	if e.registry != nil && lease.Kind() == token.LeaseDateExpiryKind {
		e.registry.Insert(lease.Expiry(), gc.Locator{Document: "tokens", Key: key})
	}

	return wire, fromStoreResult(res), nil
}

func (e *Engine) persist(ctx context.Context, flavor token.Flavor, contents token.TokenContents) ([]byte, store.Result, error) {
	var key []byte
	switch flavor {
	case token.FlavorHash:
		digest, err := token.HashToken(contents, e.keys.Default())
		if err != nil {
			return nil, store.ResultUnknown, err
		}
		rawDigest, _, err := token.ParseHashWire(digest)
		if err != nil {
			return nil, store.ResultUnknown, err
		}
		key = rawDigest
	default:
		key = storeKey(flavor, contents.Identity)
	}

	encoded, err := contents.Encode()
	if err != nil {
		return nil, store.ResultUnknown, err
	}
	res, err := e.store.Set(ctx, key, encoded)
	if err != nil {
		return nil, store.ResultUnknown, fmt.Errorf("auth: failed to persist record: %w", err)
	}
	return key, res, nil
}

func (e *Engine) fetch(ctx context.Context, cred token.Credential) (token.TokenContents, []byte, error) {
	var key []byte
	switch cred.Flavor {
	case token.FlavorHash:
		key = cred.Digest
	default:
		key = storeKey(cred.Flavor, cred.Identity)
	}

	raw, res, err := e.store.Get(ctx, key)
	if err != nil {
		return token.TokenContents{}, nil, fmt.Errorf("auth: store lookup failed: %w", err)
	}
	if res != store.ResultKeyFound {
		return token.TokenContents{}, key, nil
	}

	contents, err := token.Decode(raw)
	if err != nil {
		return token.TokenContents{}, key, fmt.Errorf("auth: stored record is corrupt: %w", err)
	}
	return contents, key, nil
}

// Authenticate verifies a presented token and, if requiredRole is not
// Unspecified, that its role matches. It implements the algorithm from
// spec §4.5: parse by flavor, look up the backing record, verify
// proof/nonce, check lease validity, then check role.
func (e *Engine) Authenticate(ctx context.Context, presented string, requiredRole token.Role) (Status, *token.TokenContents, error) {
	cred, err := token.ParseCredential(presented)
	if err != nil {
		return Rejected, nil, nil
	}

	contents, _, err := e.fetch(ctx, cred)
	if err != nil {
		return NotExecuted, nil, err
	}
	if contents.Identity == "" {
		return Denied, nil, nil
	}

	switch cred.Flavor {
	case token.FlavorSealed:
		opened, err := token.OpenSealedToken(cred.Identity, cred.Ciphertext, contents.Proof, e.keys.AEAD())
		if err != nil {
			return Rejected, nil, nil
		}
		contents = opened

	case token.FlavorHash:
		ok, err := token.VerifyHashDigest(contents, e.keys.Default(), cred.Digest)
		if err != nil {
			return NotExecuted, nil, err
		}
		if !ok || !constantTimeStringEqual(cred.Proof, contents.Proof) {
			return RejectedRAC, nil, nil
		}

	case token.FlavorComposite:
		if !constantTimeStringEqual(cred.Proof, contents.Proof) {
			return RejectedRAC, nil, nil
		}
	}

	switch contents.Lease.Status(tai64.Now()) {
	case token.LeaseExpired:
		return Expired, nil, nil
	case token.LeaseIndeterminate:
		// Conservative by design (spec §9): an event-driven lease the
		// core cannot evaluate on its own is treated as not granted,
		// even though the application may later confirm it's still
		// good.
		return Denied, nil, nil
	}

	if requiredRole.Kind() != token.RoleUnspecified {
		if contents.Role.Kind() == token.RoleUnspecified {
			return Denied, nil, nil
		}
		if !contents.Role.Equal(requiredRole) {
			return Rejected, nil, nil
		}
	}

	return Granted, &contents, nil
}

// Authorize runs Authenticate with an Unspecified role requirement, then
// checks the record's access-control list for requiredEntry.
func (e *Engine) Authorize(ctx context.Context, presented string, requiredEntry token.ACLEntry) (Status, error) {
	status, contents, err := e.Authenticate(ctx, presented, token.NewUnspecifiedRole())
	if err != nil {
		return NotExecuted, err
	}
	if status != Granted {
		return status, nil
	}
	if !contents.AccessControl.Allows(requiredEntry) {
		return RejectedRAC, nil
	}
	return Granted, nil
}

// Revoke removes the record referenced by presented from both the store
// and the GC registry, ahead of its natural expiry.
func (e *Engine) Revoke(ctx context.Context, presented string) (Status, error) {
	cred, err := token.ParseCredential(presented)
	if err != nil {
		return Rejected, nil
	}

	contents, key, err := e.fetch(ctx, cred)
	if err != nil {
		return NotExecuted, err
	}
	if contents.Identity == "" {
		return Denied, nil
	}

	res, err := e.store.Remove(ctx, key)
	if err != nil {
		return NotExecuted, fmt.Errorf("auth: failed to remove record: %w", err)
	}
	if e.registry != nil {
		e.registry.Remove(key)
	}
	if res != store.ResultDeleted {
		return Denied, nil
	}
	return Revoked, nil
}

// Reissue authenticates presented, then swaps its proof and timestamp for
// fresh ones, persisting the new record in place of the old one and
// returning the new wire token.
func (e *Engine) Reissue(ctx context.Context, presented string) (string, Status, error) {
	status, contents, err := e.Authenticate(ctx, presented, token.NewUnspecifiedRole())
	if err != nil {
		return "", NotExecuted, err
	}
	if status != Granted {
		return "", status, nil
	}

	cred, err := token.ParseCredential(presented)
	if err != nil {
		return "", Rejected, nil
	}

	wire, fresh, err := token.Reissue(cred.Flavor, *contents, e.keys.AEAD(), e.keys.Default(), cred.Target)
	if err != nil {
		return "", NotExecuted, err
	}

	newKey, _, err := e.persist(ctx, cred.Flavor, fresh)
	if err != nil {
		return "", NotExecuted, err
	}
	// A hash-flavor record is keyed by its digest, which covers the fresh
	// timestamp, so the old record lives under a different key: drop it.
	if cred.Flavor == token.FlavorHash && string(newKey) != string(cred.Digest) {
		if _, err := e.store.Remove(ctx, cred.Digest); err != nil {
			return "", NotExecuted, fmt.Errorf("auth: failed to remove superseded record: %w", err)
		}
		if e.registry != nil {
			e.registry.Remove(cred.Digest)
			if fresh.Lease.Kind() == token.LeaseDateExpiryKind {
				e.registry.Insert(fresh.Lease.Expiry(), gc.Locator{Document: "tokens", Key: newKey})
			}
		}
	}
	return wire, Modified, nil
}

func constantTimeStringEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
