// Command makemoderator promotes an existing user to the MODERATOR
// role.  Moderator accounts are never created through the public API;
// an operator runs this against the database directly:
//
//	makemoderator -email ops@example.com
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/excursion-booking/internal/config"
	"github.com/iliyamo/excursion-booking/internal/database"
	"github.com/iliyamo/excursion-booking/internal/repository"
)

func main() {
	email := flag.String("email", "", "email of the user to promote")
	flag.Parse()
	if *email == "" {
		logrus.Fatal("usage: makemoderator -email <address>")
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not read .env file")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repository.NewUserRepo(db).PromoteToModerator(ctx, *email); err != nil {
		logrus.WithError(err).Fatal("promotion failed")
	}
	logrus.WithField("email", *email).Info("user promoted to MODERATOR")
}
