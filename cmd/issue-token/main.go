// Command issue-token mints an identity token for local testing.
//
// Usage:
//
//	issue-token -user tenant-1 -role tenant -unit unit-101
//	issue-token -user landlord-1 -role landlord -buildings bldg-1,bldg-2
//
// The signing secret, issuer and TTL come from the regular configuration.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/heartmarshall/tenantdesk-backend/internal/auth"
	"github.com/heartmarshall/tenantdesk-backend/internal/config"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

func main() {
	user := flag.String("user", "", "user id (token subject)")
	role := flag.String("role", "tenant", "tenant or landlord")
	name := flag.String("name", "", "display name")
	avatar := flag.String("avatar", "", "avatar url")
	unit := flag.String("unit", "", "claimed unit id (tenants)")
	buildings := flag.String("buildings", "", "comma-separated managed building ids (landlords)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	id := domain.Identity{
		UserID: *user,
		Name:   *name,
		Avatar: *avatar,
		Role:   domain.UserRole(*role),
	}
	if *unit != "" {
		id.UnitID = unit
	}
	for b := range strings.SplitSeq(*buildings, ",") {
		if b = strings.TrimSpace(b); b != "" {
			id.BuildingIDs = append(id.BuildingIDs, b)
		}
	}

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	token, err := jwt.GenerateIdentityToken(id)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
