package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	pkgAuth "github.com/angelmondragon/kitchenboard/pkg/auth"
	"github.com/angelmondragon/kitchenboard/pkg/config"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

// devtoken mints a staff access token for local use against a dev board.
func main() {
	logg := logger.New(logger.Options{ServiceName: "devtoken"})
	_ = godotenv.Load()

	userID := flag.String("user", "dev-user", "user id placed in the token subject")
	role := flag.String("role", string(enums.MemberRoleKitchen), "staff role: owner|admin|manager|kitchen|waiter|viewer")
	restaurantID := flag.String("restaurant", "", "restaurant id the token is scoped to")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if !cfg.App.IsDev() {
		fmt.Fprintln(os.Stderr, "devtoken only runs with KITCHENBOARD_APP_ENV=dev")
		os.Exit(1)
	}

	memberRole, err := enums.ParseMemberRole(*role)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), *ttl, pkgAuth.AccessTokenPayload{
		UserID:       *userID,
		Role:         memberRole,
		RestaurantID: *restaurantID,
	})
	if err != nil {
		logg.Error(ctx, "failed to mint token", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
