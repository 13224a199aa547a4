package auth

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suleymanmyradov/schemeguardian/gc"
	"github.com/suleymanmyradov/schemeguardian/secret"
	"github.com/suleymanmyradov/schemeguardian/store"
	"github.com/suleymanmyradov/schemeguardian/tai64"
	"github.com/suleymanmyradov/schemeguardian/token"
)

func setupEngine(t *testing.T) (*Engine, *gc.Registry) {
	t.Helper()
	keys, err := secret.New(bytes.Repeat([]byte("d"), 32), bytes.Repeat([]byte("a"), 32), bytes.Repeat([]byte("e"), 32))
	require.NoError(t, err)

	s := store.NewMemoryStore()
	reg := gc.New(s)
	return New(keys, s, reg), reg
}

func TestIssueAndAuthenticateSealed(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, status, err := engine.Issue(ctx, token.FlavorSealed, "user-1", token.NewUserRole(), token.NewLifetimeLease(), nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, Inserted, status)

	status2, contents, err := engine.Authenticate(ctx, wire, token.NewUserRole())
	require.NoError(t, err)
	assert.Equal(t, Granted, status2)
	assert.Equal(t, "user-1", contents.Identity)
}

func TestIssueAndAuthenticateHash(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, status, err := engine.Issue(ctx, token.FlavorHash, "user-2", token.NewAdminRole(), token.NewLifetimeLease(), nil, nil, "")
	require.NoError(t, err)
	assert.Equal(t, Inserted, status)

	status2, contents, err := engine.Authenticate(ctx, wire, token.NewAdminRole())
	require.NoError(t, err)
	assert.Equal(t, Granted, status2)
	assert.Equal(t, "user-2", contents.Identity)
}

func TestIssueAndAuthenticateComposite(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, status, err := engine.Issue(ctx, token.FlavorComposite, "user-3", token.NewSubAdminRole(), token.NewLifetimeLease(), token.AccessControlList{token.ACLRead}, nil, "doc-9")
	require.NoError(t, err)
	assert.Equal(t, Inserted, status)

	status2, err := engine.Authorize(ctx, wire, token.ACLRead)
	require.NoError(t, err)
	assert.Equal(t, Granted, status2)

	status3, err := engine.Authorize(ctx, wire, token.ACLWrite)
	require.NoError(t, err)
	assert.Equal(t, RejectedRAC, status3)
}

func TestAuthenticateRejectsWrongRole(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, _, err := engine.Issue(ctx, token.FlavorComposite, "user-4", token.NewUserRole(), token.NewLifetimeLease(), nil, nil, "")
	require.NoError(t, err)

	status, _, err := engine.Authenticate(ctx, wire, token.NewAdminRole())
	require.NoError(t, err)
	assert.Equal(t, Rejected, status)
}

func TestAuthenticateReportsExpired(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	past := tai64.Now().Add(-time.Hour)
	wire, _, err := engine.Issue(ctx, token.FlavorComposite, "user-5", token.NewUserRole(), token.NewDateExpiryLease(past), nil, nil, "")
	require.NoError(t, err)

	status, _, err := engine.Authenticate(ctx, wire, token.NewUnspecifiedRole())
	require.NoError(t, err)
	assert.Equal(t, Expired, status)
}

func TestAuthenticateDeniesIndeterminateLease(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, _, err := engine.Issue(ctx, token.FlavorComposite, "user-6", token.NewUserRole(), token.NewOnDownloadLease(), nil, nil, "")
	require.NoError(t, err)

	status, _, err := engine.Authenticate(ctx, wire, token.NewUnspecifiedRole())
	require.NoError(t, err)
	assert.Equal(t, Denied, status)
}

func TestAuthenticateUnknownTokenIsDenied(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, err := token.ComposeToken(mustBuild(t, "ghost"), "")
	require.NoError(t, err)

	status, _, err := engine.Authenticate(ctx, wire, token.NewUnspecifiedRole())
	require.NoError(t, err)
	assert.Equal(t, Denied, status)
}

func mustBuild(t *testing.T, identity string) token.TokenContents {
	t.Helper()
	c, err := token.NewBuilder(identity, token.NewUserRole(), token.NewLifetimeLease()).Build()
	require.NoError(t, err)
	return c
}

func TestRevokeRemovesRecord(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, _, err := engine.Issue(ctx, token.FlavorComposite, "user-7", token.NewUserRole(), token.NewLifetimeLease(), nil, nil, "")
	require.NoError(t, err)

	status, err := engine.Revoke(ctx, wire)
	require.NoError(t, err)
	assert.Equal(t, Revoked, status)

	status2, _, err := engine.Authenticate(ctx, wire, token.NewUnspecifiedRole())
	require.NoError(t, err)
	assert.Equal(t, Denied, status2)
}

func TestReissueRotatesProofAndKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, _, err := engine.Issue(ctx, token.FlavorComposite, "user-8", token.NewUserRole(), token.NewLifetimeLease(), nil, nil, "")
	require.NoError(t, err)

	newWire, status, err := engine.Reissue(ctx, wire)
	require.NoError(t, err)
	assert.Equal(t, Modified, status)
	assert.NotEqual(t, wire, newWire)

	status2, contents, err := engine.Authenticate(ctx, newWire, token.NewUnspecifiedRole())
	require.NoError(t, err)
	assert.Equal(t, Granted, status2)
	assert.Equal(t, "user-8", contents.Identity)

	status3, _, err := engine.Authenticate(ctx, wire, token.NewUnspecifiedRole())
	require.NoError(t, err)
	assert.Equal(t, RejectedRAC, status3)
}

// TestAuthenticateRejectsTamperedCompositeProof covers S3: flipping one
// character in a composite token's proof must be reported as RejectedRAC,
// not a bare Rejected.
func TestAuthenticateRejectsTamperedCompositeProof(t *testing.T) {
	ctx := context.Background()
	engine, _ := setupEngine(t)

	wire, _, err := engine.Issue(ctx, token.FlavorComposite, "user-9", token.NewUserRole(), token.NewLifetimeLease(), nil, nil, "")
	require.NoError(t, err)

	identity, proof, target, err := token.ParseComposite(wire)
	require.NoError(t, err)
	tampered := flipChar(proof)
	tamperedWire, err := token.ComposeToken(token.TokenContents{Identity: identity, Proof: tampered}, target)
	require.NoError(t, err)

	status, _, err := engine.Authenticate(ctx, tamperedWire, token.NewUnspecifiedRole())
	require.NoError(t, err)
	assert.Equal(t, RejectedRAC, status)
}

func flipChar(s string) string {
	b := []byte(s)
	if b[0] == 'a' {
		b[0] = 'b'
	} else {
		b[0] = 'a'
	}
	return string(b)
}
