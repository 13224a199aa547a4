// Package schemeguardian is a token-centric authentication core: issue,
// authenticate, authorize, revoke, and reissue bearer credentials carrying
// an identity, a role, a lease, and an access-control list, in any of
// three wire formats (sealed AEAD ciphertext, keyed-BLAKE3 hash digest, or
// plaintext composite string).
//
// The package tree is layered: tai64 and csprng are the foundation,
// cryptocore and secret build the cryptographic primitives and key
// container on top of them, token implements the data model and wire
// formats, store and gc give it persistence and expiry reclamation, and
// auth orchestrates all of it behind five operations. configload loads
// the three master keys an embedding application needs to boot the
// secret package's global container.
//
// A typical embedder wires it together roughly as:
//
//	keys := configload.MustLoad(configload.DefaultPath)
//	backing, _ := store.NewBoltStore("./secrets.db")
//	registry := gc.New(backing)
//	engine := auth.New(keys, backing, registry)
//
//	wire, _, _ := engine.Issue(ctx, token.FlavorSealed, "user-42",
//		token.NewUserRole(), token.DefaultLease(), nil, nil, "")
//	status, contents, _ := engine.Authenticate(ctx, wire, token.NewUserRole())
package schemeguardian
