// Command schemeguardianctl is a thin demonstration binary that wires the
// full SchemeGuardian stack together: configuration, the master key
// container, a bbolt-backed secret store, the GC registry, and the auth
// engine. It exists to exercise the library end to end, not as a
// production server — embedding applications are expected to call the
// auth package directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/schemeguardian/auth"
	"github.com/suleymanmyradov/schemeguardian/configload"
	"github.com/suleymanmyradov/schemeguardian/gc"
	"github.com/suleymanmyradov/schemeguardian/store"
	"github.com/suleymanmyradov/schemeguardian/token"
)

func main() {
	configPath := flag.String("config", configload.DefaultPath, "path to SchemeGuardianConf.toml")
	dbPath := flag.String("db", "./SchemeGuardian/secrets.db", "path to the bbolt secret store")
	identity := flag.String("identity", "demo-user", "identity to issue a token for")
	flag.Parse()

	keys := configload.MustLoad(*configPath)

	s, err := store.NewBoltStore(*dbPath)
	if err != nil {
		logx.Errorf("failed to open secret store: %v", err)
		os.Exit(1)
	}
	defer s.Close()

	registry := gc.New(s)
	engine := auth.New(keys, s, registry)

	ctx := context.Background()
	wire, status, err := engine.Issue(ctx, token.FlavorComposite, *identity, token.NewUserRole(), token.DefaultLease(), token.AccessControlList{token.ACLRead}, nil, "")
	if err != nil {
		logx.Errorf("issue failed: %v", err)
		os.Exit(1)
	}
	fmt.Printf("issued (%s): %s\n", status, wire)

	authStatus, contents, err := engine.Authenticate(ctx, wire, token.NewUserRole())
	if err != nil {
		logx.Errorf("authenticate failed: %v", err)
		os.Exit(1)
	}
	fmt.Printf("authenticated (%s): identity=%s role=%s\n", authStatus, contents.Identity, contents.Role)
}
