// Command minttoken prints a locally signed token for exercising protected routes.
//
//	JWT_SECRET=... go run ./cmd/minttoken -email alice@x.com -claim name=Alice
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dealcraft/dealcraft-server/internal/tokens"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type claimFlags map[string]interface{}

func (c claimFlags) String() string { return fmt.Sprint(map[string]interface{}(c)) }

func (c claimFlags) Set(v string) error {
	k, val, ok := strings.Cut(v, "=")
	if !ok || k == "" {
		return fmt.Errorf("claim %q must be key=value", v)
	}
	c[k] = val
	return nil
}

func main() {
	_ = godotenv.Load()
	viper.AutomaticEnv()
	viper.SetDefault("JWT_TTL_MINUTES", 60)

	claims := claimFlags{}
	email := flag.String("email", "", "email claim")
	flag.Var(claims, "claim", "extra claim as key=value (repeatable)")
	flag.Parse()

	if *email != "" {
		claims["email"] = *email
	}
	m := tokens.NewManager(viper.GetString("JWT_SECRET"), time.Duration(viper.GetInt("JWT_TTL_MINUTES"))*time.Minute, nil)
	tok, err := m.Issue(claims)
	if err != nil {
		fmt.Fprintln(os.Stderr, "minttoken:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
